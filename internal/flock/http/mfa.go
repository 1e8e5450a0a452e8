package http

import (
	"net/http"

	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
)

type MFACodeRequest struct {
	Code string `json:"code"`
}

type MFAStatusResponse struct {
	Enabled              bool `json:"enabled"`
	BackupCodesRemaining int  `json:"backupCodesRemaining"`
}

type MFAEnrollResponse struct {
	Enrollment service.MFAEnrollment `json:"enrollment"`
}

type BackupCodesResponse struct {
	BackupCodes []string `json:"backupCodes"`
}

type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleStatus godoc
//
//	@Summary	Two-factor status
//	@Tags		MFA
//	@Produce	json
//	@Success	200	{object}	MFAStatusResponse
//	@Failure	401	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/auth/mfa [get].
func (h *MFAHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	enabled, remaining, err := h.MFAService.Status(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MFAStatusResponse{Enabled: enabled, BackupCodesRemaining: remaining})
}

// HandleEnroll godoc
//
//	@Summary		Start TOTP enrollment
//	@Description	Returns a fresh secret and otpauth URL. Two-factor stays off until the first code is confirmed.
//	@Tags			MFA
//	@Produce		json
//	@Success		200	{object}	MFAEnrollResponse
//	@Failure		400	{object}	ErrorResponse	"already enabled"
//	@Failure		401	{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/auth/mfa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.MFAService.Enroll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MFAEnrollResponse{Enrollment: enrollment})
}

// HandleConfirm godoc
//
//	@Summary		Confirm TOTP enrollment
//	@Description	Enables two-factor and returns the backup codes. They are shown once.
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MFACodeRequest	true	"Current TOTP code"
//	@Success		200		{object}	BackupCodesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/auth/mfa/confirm [post].
func (h *MFAHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req MFACodeRequest
	if !decode(w, r, &req) {
		return
	}

	codes, err := h.MFAService.Confirm(r.Context(), req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, BackupCodesResponse{BackupCodes: codes})
}

// HandleRegenerateBackupCodes godoc
//
//	@Summary	Replace backup codes
//	@Tags		MFA
//	@Accept		json
//	@Produce	json
//	@Param		request	body		MFACodeRequest	true	"Current TOTP code"
//	@Success	200		{object}	BackupCodesResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/auth/mfa/backup-codes [post].
func (h *MFAHandler) HandleRegenerateBackupCodes(w http.ResponseWriter, r *http.Request) {
	var req MFACodeRequest
	if !decode(w, r, &req) {
		return
	}

	codes, err := h.MFAService.RegenerateBackupCodes(r.Context(), req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, BackupCodesResponse{BackupCodes: codes})
}

// HandleDisable godoc
//
//	@Summary	Turn off two-factor
//	@Tags		MFA
//	@Accept		json
//	@Param		request	body	MFACodeRequest	true	"Current TOTP code"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/auth/mfa [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	var req MFACodeRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.MFAService.Disable(r.Context(), req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
