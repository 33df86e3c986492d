package engine

import (
	"context"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// CashAdjustRequest is a signed correction against a shift's expected cash.
type CashAdjustRequest struct {
	ShiftID  string
	Amount   int64 // signed delta, minor units
	Override bool  // required for a verified shift past the grace window
}

// AdjustCash applies a signed delta to a shift's expected cash. Adjusting a
// verified shift is allowed within the grace window after verification; past
// it the caller must set Override, and the action is audited at high risk.
func (s *Service) AdjustCash(ctx context.Context, req CashAdjustRequest, g domain.GuardedRequest) (*domain.Shift, error) {
	if req.Amount == 0 {
		return nil, domain.ErrValidation("amount must be non-zero")
	}
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrTenantContextMissing()
	}

	var out *domain.Shift
	err := s.run(ctx, g, func(tx domain.Executor) (*mutation, error) {
		shift, err := s.shifts.Get(ctx, tx, req.ShiftID)
		if err != nil {
			return nil, err
		}

		risk := domain.RiskMedium
		override := false
		if shift.Status == domain.ShiftVerified {
			risk = domain.RiskHigh
			pastGrace := shift.VerifiedAt == nil || time.Since(*shift.VerifiedAt) > s.graceWindow
			if pastGrace {
				if !req.Override {
					return nil, domain.ErrAccessDenied("verified shift is past the grace window; override required")
				}
				override = true
			}
		}
		old := shift.Snapshot()

		adj := &domain.CashAdjustment{
			ID:        domain.NewID(),
			TenantID:  actor.TenantID,
			ShiftID:   shift.ID,
			ActorID:   actor.UserID,
			Amount:    req.Amount,
			Reason:    g.Reason,
			Override:  override,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.shifts.AddAdjustment(ctx, tx, adj); err != nil {
			return nil, err
		}
		shift.ExpectedCash += req.Amount
		if err := s.shifts.SetExpectedCash(ctx, tx, shift.ID, shift.ExpectedCash); err != nil {
			return nil, err
		}
		out = shift
		return &mutation{action: "ADJUST_CASH", risk: risk, old: old, new: shift.Snapshot()}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("cash adjusted", "shift", req.ShiftID, "amount", req.Amount)
	return out, nil
}
