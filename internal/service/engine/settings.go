package engine

import (
	"context"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// SetDataLock locks historical data edits until the given time; nil clears
// the lock. Owner only.
func (s *Service) SetDataLock(ctx context.Context, until *time.Time, g domain.GuardedRequest) (*domain.PropertySettings, error) {
	if err := requireRole(ctx, domain.RoleOwner); err != nil {
		return nil, err
	}
	return s.updateSettings(ctx, "SET_DATA_LOCK", g, func(p *domain.PropertySettings) {
		p.DataLockedUntil = until
	})
}

// SetMaintenance toggles maintenance mode with an optional banner message.
// Owner only.
func (s *Service) SetMaintenance(ctx context.Context, enabled bool, message string, g domain.GuardedRequest) (*domain.PropertySettings, error) {
	if err := requireRole(ctx, domain.RoleOwner); err != nil {
		return nil, err
	}
	return s.updateSettings(ctx, "SET_MAINTENANCE", g, func(p *domain.PropertySettings) {
		p.MaintenanceEnabled = enabled
		p.MaintenanceMessage = message
	})
}

func (s *Service) updateSettings(ctx context.Context, action string, g domain.GuardedRequest, apply func(*domain.PropertySettings)) (*domain.PropertySettings, error) {
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrTenantContextMissing()
	}

	var out *domain.PropertySettings
	err := s.run(ctx, g, func(tx domain.Executor) (*mutation, error) {
		cur, err := s.settings.Get(ctx, tx)
		if err != nil {
			return nil, err
		}
		cur.TenantID = actor.TenantID
		old := cur.Snapshot()

		apply(cur)
		cur.UpdatedAt = time.Now().UTC()
		if err := s.settings.Upsert(ctx, tx, cur); err != nil {
			return nil, err
		}
		out = cur
		return &mutation{action: action, risk: domain.RiskHigh, old: old, new: cur.Snapshot()}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("settings updated", "action", action)
	return out, nil
}
