package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/cryptox"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

const (
	DefaultInviteTTL = 7 * 24 * time.Hour
	inviteCodeLength = 12
)

type InviteService struct {
	Deps
	Mailer Mailer
	AppURL string
	TTL    time.Duration
}

type CreateInviteRequest struct {
	Email string      `json:"email" validate:"required,email,max=254"`
	Role  domain.Role `json:"role" validate:"required,oneof=admin leader member viewer"`
}

// CreatedInvite is an invite plus the one time code and link. The code is
// only ever available here.
type CreatedInvite struct {
	Invite domain.Invite `json:"invite"`
	Code   string        `json:"code"`
	Link   string        `json:"link"`
}

// Create invites email into the caller's organization with role.
func (s *InviteService) Create(ctx context.Context, req CreateInviteRequest) (CreatedInvite, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorize
	a, err := authorize(ctx, domain.PermUsersManage)
	if err != nil {
		return CreatedInvite{}, err
	}

	// 2. Validate
	req.Email = domain.NormalizeEmail(req.Email)
	if err := check(req); err != nil {
		return CreatedInvite{}, err
	}

	// 3. Generate the code; only its fingerprint is stored
	code, err := cryptox.GenerateCode(inviteCodeLength)
	if err != nil {
		return CreatedInvite{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now()
	inv := domain.Invite{
		ID:        idx.New().String(),
		OrgID:     a.scope.OrgID(),
		Email:     req.Email,
		Role:      req.Role,
		CodeHash:  cryptox.FingerprintToken(cryptox.NormalizeCode(code)),
		InvitedBy: a.id(),
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}

	// 4. Conflict checks and insert together
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// only this organization's accounts are checked; a clash with another
		// tenant surfaces to the invitee when they try to register
		if _, err := tx.Users().GetByEmailInScope(ctx, a.scope, req.Email); err == nil {
			return conflict("A user with email %s already exists.", req.Email)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		pending, err := tx.Invites().HasPending(ctx, a.scope, req.Email, now)
		if err != nil {
			return err
		}
		if pending {
			return conflict("An invite for %s is already pending.", req.Email)
		}

		if err := tx.Invites().Create(ctx, a.scope, inv); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditCreated, domain.EntityInvite, inv.ID, inv)
	})
	if err != nil {
		return CreatedInvite{}, err
	}

	link := fmt.Sprintf("%s/register?invite=%s", s.AppURL, url.QueryEscape(code))
	if s.Mailer != nil {
		msg := Message{
			To:      inv.Email,
			Subject: "You have been invited to flock",
			Body:    fmt.Sprintf("You have been invited to join as %s. Create your account here:\n\n%s\n", inv.Role, link),
		}
		if err := s.Mailer.Send(ctx, msg); err != nil {
			log.Error("failed to send invite email", slog.String("invite_id", inv.ID), slog.Any("error", err))
		}
	}

	log.Info("invite created",
		slog.String("invite_id", inv.ID),
		slog.String("role", string(inv.Role)),
	)
	return CreatedInvite{Invite: inv, Code: code, Link: link}, nil
}

// List returns every invite of the caller's organization.
func (s *InviteService) List(ctx context.Context) ([]domain.Invite, error) {
	a, err := authorize(ctx, domain.PermUsersManage)
	if err != nil {
		return nil, err
	}
	return s.Store.Invites().List(ctx, a.scope)
}

// Revoke deletes a pending invite. Accepted invites are history and stay.
func (s *InviteService) Revoke(ctx context.Context, id string) error {
	a, err := authorize(ctx, domain.PermUsersManage)
	if err != nil {
		return err
	}
	if id, err = parseID(id); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invites().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if inv.State(s.now()) == domain.InviteAccepted {
			return conflict("That invite has already been accepted.")
		}
		if err := tx.Invites().Delete(ctx, a.scope, id); err != nil {
			return notFound(err)
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityInvite, id, inv)
	})
}

func (s *InviteService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultInviteTTL
	}
	return s.TTL
}
