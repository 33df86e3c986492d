package engine

import (
	"context"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// ResetStaffPIN issues a fresh random POS PIN for a staff member and returns
// it in the clear, once. Only the hash is stored and the PIN itself never
// reaches the audit log. Owner or manager.
func (s *Service) ResetStaffPIN(ctx context.Context, userID string, g domain.GuardedRequest) (string, error) {
	if err := requireRole(ctx, domain.RoleOwner, domain.RoleManager); err != nil {
		return "", err
	}

	var pin string
	err := s.run(ctx, g, func(tx domain.Executor) (*mutation, error) {
		u, err := s.users.Get(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		p, hash, err := s.creds.NewPIN()
		if err != nil {
			return nil, err
		}
		if err := s.users.SetPINHash(ctx, tx, u.ID, hash); err != nil {
			return nil, err
		}
		pin = p
		return &mutation{
			action: "RESET_STAFF_PIN",
			risk:   domain.RiskHigh,
			old:    map[string]any{"user_id": u.ID},
			new:    map[string]any{"user_id": u.ID, "pin_reset": true},
		}, nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("staff pin reset", "user", userID)
	return pin, nil
}

// SetStaffBlocked blocks or unblocks a staff account. Blocking also bumps the
// token version so outstanding sessions die immediately. Owner or manager.
func (s *Service) SetStaffBlocked(ctx context.Context, userID string, blocked bool, g domain.GuardedRequest) error {
	if err := requireRole(ctx, domain.RoleOwner, domain.RoleManager); err != nil {
		return err
	}
	actor, _ := domain.ActorFromContext(ctx)
	if blocked && actor.UserID == userID {
		return domain.ErrValidation("cannot block your own account")
	}

	err := s.run(ctx, g, func(tx domain.Executor) (*mutation, error) {
		u, err := s.users.Get(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		old := map[string]any{"active": u.Active}
		if err := s.users.SetActive(ctx, tx, u.ID, !blocked); err != nil {
			return nil, err
		}
		if blocked {
			if err := s.users.BumpTokenVersion(ctx, tx, u.ID); err != nil {
				return nil, err
			}
		}
		action := "UNBLOCK_STAFF"
		if blocked {
			action = "BLOCK_STAFF"
		}
		return &mutation{
			action: action,
			risk:   domain.RiskHigh,
			old:    old,
			new:    map[string]any{"active": !blocked},
		}, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("staff block state changed", "user", userID, "blocked", blocked)
	return nil
}

// ForceLogout bumps a staff member's token version, invalidating every
// session token issued to them. Owner or manager.
func (s *Service) ForceLogout(ctx context.Context, userID string, g domain.GuardedRequest) error {
	if err := requireRole(ctx, domain.RoleOwner, domain.RoleManager); err != nil {
		return err
	}
	err := s.run(ctx, g, func(tx domain.Executor) (*mutation, error) {
		u, err := s.users.Get(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.users.BumpTokenVersion(ctx, tx, u.ID); err != nil {
			return nil, err
		}
		return &mutation{
			action: "FORCE_LOGOUT",
			risk:   domain.RiskMedium,
			old:    map[string]any{"token_version": u.TokenVersion},
			new:    map[string]any{"token_version": u.TokenVersion + 1},
		}, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("forced logout", "user", userID)
	return nil
}
