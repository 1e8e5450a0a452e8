package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// UserService administers the accounts of an organization.
type UserService struct {
	Deps
}

type UpdateRoleRequest struct {
	Role domain.Role `json:"role" validate:"required,oneof=admin leader member viewer"`
}

type UpdateStatusRequest struct {
	Status domain.UserStatus `json:"status" validate:"required,oneof=active deactivated"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	a, err := authorize(ctx, domain.PermUsersManage)
	if err != nil {
		return nil, err
	}
	return s.Store.Users().List(ctx, a.scope)
}

// UpdateRole changes a user's role. Nobody can change their own role and the
// last active admin cannot be demoted.
func (s *UserService) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (domain.User, error) {
	a, err := authorize(ctx, domain.PermUsersManage)
	if err != nil {
		return domain.User{}, err
	}
	if err := check(req); err != nil {
		return domain.User{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.User{}, err
	}
	if id == a.id() {
		return domain.User{}, conflict("You cannot change your own role.")
	}

	var out domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		if u.Role == req.Role {
			out = u
			return nil
		}

		if err := s.keepAnAdmin(ctx, tx, a.scope, u); err != nil {
			return err
		}

		now := s.now()
		if err := tx.Users().UpdateRole(ctx, a.scope, id, req.Role, now); err != nil {
			return notFound(err)
		}

		out = u
		out.Role = req.Role
		out.UpdatedAt = now
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityUser, id, domain.Diff{
			Old: map[string]any{"role": u.Role},
			New: map[string]any{"role": req.Role},
		})
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user role changed",
		slog.String("target_user_id", id),
		slog.String("role", string(req.Role)),
	)
	return out, nil
}

// UpdateStatus activates or deactivates a user. Deactivating signs the user
// out everywhere.
func (s *UserService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (domain.User, error) {
	a, err := authorize(ctx, domain.PermUsersManage)
	if err != nil {
		return domain.User{}, err
	}
	if err := check(req); err != nil {
		return domain.User{}, err
	}
	if id, err = parseID(id); err != nil {
		return domain.User{}, err
	}
	if id == a.id() {
		return domain.User{}, conflict("You cannot change your own status.")
	}

	var out domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().Get(ctx, a.scope, id)
		if err != nil {
			return notFound(err)
		}
		// deleted accounts are anonymized and stay that way
		if u.Status == domain.UserDeleted {
			return ErrNotFound
		}
		if u.Status == req.Status {
			out = u
			return nil
		}

		if req.Status == domain.UserDeactivated {
			if err := s.keepAnAdmin(ctx, tx, a.scope, u); err != nil {
				return err
			}
		}

		now := s.now()
		if err := tx.Users().UpdateStatus(ctx, a.scope, id, req.Status, now); err != nil {
			return notFound(err)
		}
		if req.Status == domain.UserDeactivated {
			if _, err := tx.Sessions().DeleteForUser(ctx, id); err != nil {
				return err
			}
		}

		out = u
		out.Status = req.Status
		out.UpdatedAt = now
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityUser, id, domain.Diff{
			Old: map[string]any{"status": u.Status},
			New: map[string]any{"status": req.Status},
		})
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user status changed",
		slog.String("target_user_id", id),
		slog.String("status", string(req.Status)),
	)
	return out, nil
}

// UpdateProfile renames the signed in user.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (domain.User, error) {
	u, err := RequireAuth(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if err := check(req); err != nil {
		return domain.User{}, err
	}

	now := s.now()
	if err := s.Store.Users().UpdateName(ctx, u.ID, req.Name, now); err != nil {
		return domain.User{}, notFound(err)
	}
	u.Name = req.Name
	u.UpdatedAt = now
	return u, nil
}

// keepAnAdmin refuses to take an active admin away when they are the last.
func (s *UserService) keepAnAdmin(ctx context.Context, tx store.Tx, sc domain.Scope, u domain.User) error {
	if u.Role != domain.RoleAdmin || !u.IsActive() {
		return nil
	}
	n, err := tx.Users().CountActiveAdmins(ctx, sc)
	if err != nil {
		return err
	}
	if n <= 1 {
		return conflict("An organization needs at least one active admin.")
	}
	return nil
}
