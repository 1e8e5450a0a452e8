package http

import (
	"net/http"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

type UserResponse struct {
	User domain.User `json:"user"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

// SessionInfo is a session as its owner sees it.
type SessionInfo struct {
	domain.Session
	Current bool `json:"current"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService

	cookies    cookies
	trustProxy bool
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Creates an account. With an invite code the user joins the inviting organization with the invited role.
//	@Description	Without one the very first organization and its admin are created; once any organization exists that path is closed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.RegisterRequest	true	"Registration"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse	"validation failed or invalid invite"
//	@Failure		429		{object}	ErrorResponse
//	@Router			/api/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.AuthService.Register(r.Context(), req, clientMeta(r, h.trustProxy))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.cookies.set(w, res.Token)
	httpx.WriteJSON(w, http.StatusCreated, UserResponse{User: res.User})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Checks credentials and sets the session cookie. Accounts with two-factor authentication need totpCode or backupCode;
//	@Description	without one the response is 401 with mfaRequired set.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.LoginRequest	true	"Credentials"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req, clientMeta(r, h.trustProxy), sessionToken(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.cookies.set(w, res.Token)
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: res.User})
}

// HandleLogout godoc
//
//	@Summary	Log out
//	@Tags		Auth
//	@Success	204
//	@Router		/api/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), sessionToken(r)); err != nil {
		slogx.FromContext(r.Context()).Error("failed to delete session", "error", err)
	}
	h.cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe godoc
//
//	@Summary	Current user
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	UserResponse
//	@Failure	401	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := service.RequireAuth(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: u})
}

// HandleUpdateProfile godoc
//
//	@Summary	Update own profile
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.UpdateProfileRequest	true	"Profile"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/auth/me [patch].
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: u})
}

// HandleDeleteAccount godoc
//
//	@Summary		Delete own account
//	@Description	Anonymizes the account and signs it out everywhere. The last active admin of an organization cannot do this.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	DeleteAccountRequest	true	"Current password"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/auth/me [delete].
func (h *AuthHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req DeleteAccountRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.AuthService.DeleteAccount(r.Context(), req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	h.cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Every other session of the user is signed out.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	service.ChangePasswordRequest	true	"Passwords"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Security		SessionCookie
//	@Router			/api/v1/auth/password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req service.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}

	sess, _ := sessionFrom(r.Context())
	if err := h.AuthService.ChangePassword(r.Context(), req, sess.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRequestPasswordReset godoc
//
//	@Summary		Request a password reset
//	@Description	Always 202, whether or not the address belongs to an account.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	PasswordResetRequest	true	"Email"
//	@Success		202
//	@Failure		400	{object}	ErrorResponse
//	@Failure		429	{object}	ErrorResponse
//	@Router			/api/v1/auth/password-reset/request [post].
func (h *AuthHandler) HandleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleResetPassword godoc
//
//	@Summary		Reset password
//	@Description	Consumes a reset token, sets the new password and signs the account out everywhere.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	service.ResetPasswordRequest	true	"Token and new password"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		429	{object}	ErrorResponse
//	@Router			/api/v1/auth/password-reset [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleVerifyEmail godoc
//
//	@Summary	Verify email address
//	@Tags		Auth
//	@Accept		json
//	@Param		request	body	TokenRequest	true	"Verification token"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	429	{object}	ErrorResponse
//	@Router		/api/v1/auth/verify-email [post].
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.AuthService.VerifyEmail(r.Context(), req.Token); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleResendVerification godoc
//
//	@Summary	Resend the verification email
//	@Tags		Auth
//	@Success	202
//	@Failure	400	{object}	ErrorResponse	"already verified"
//	@Failure	401	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/auth/verify-email/resend [post].
func (h *AuthHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.ResendVerification(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleSessions godoc
//
//	@Summary	List own sessions
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	SessionsResponse
//	@Failure	401	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/auth/sessions [get].
func (h *AuthHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.AuthService.Sessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	current, _ := sessionFrom(r.Context())
	out := SessionsResponse{Sessions: make([]SessionInfo, len(sessions))}
	for i, s := range sessions {
		out.Sessions[i] = SessionInfo{Session: s, Current: s.ID == current.ID}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRevokeSession godoc
//
//	@Summary	Sign out one of your sessions
//	@Tags		Auth
//	@Param		id	path	string	true	"Session id"
//	@Success	204
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	SessionCookie
//	@Router		/api/v1/auth/sessions/{id} [delete].
func (h *AuthHandler) HandleRevokeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.RevokeSession(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	if current, ok := sessionFrom(r.Context()); ok && current.ID == r.PathValue("id") {
		h.cookies.clear(w)
	}
	w.WriteHeader(http.StatusNoContent)
}
