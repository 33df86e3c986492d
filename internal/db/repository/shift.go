package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// ShiftRepo implements domain.ShiftRepository.
type ShiftRepo struct{}

// NewShiftRepo creates a new ShiftRepo.
func NewShiftRepo() *ShiftRepo { return &ShiftRepo{} }

// Create opens a shift.
func (r *ShiftRepo) Create(ctx context.Context, e domain.Executor, s *domain.Shift) error {
	_, err := e.Exec(ctx,
		`INSERT INTO shifts (id, tenant_id, user_id, status, opening_float, expected_cash, counted_cash)
		 VALUES (:id, :tenant_id, :user_id, 'OPEN', :opening_float, :expected_cash, 0)`,
		sql.Named("id", s.ID),
		sql.Named("user_id", s.UserID),
		sql.Named("opening_float", s.OpeningFloat),
		sql.Named("expected_cash", s.ExpectedCash),
	)
	return mapDBError(err)
}

// Get returns a shift by id within the tenant.
func (r *ShiftRepo) Get(ctx context.Context, e domain.Executor, id string) (*domain.Shift, error) {
	row, err := e.QueryRow(ctx,
		`SELECT id, tenant_id, user_id, status, opening_float, expected_cash, counted_cash, opened_at, closed_at, verified_at
		 FROM shifts WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	var s domain.Shift
	var closedAt, verifiedAt sql.NullTime
	if err := row.Scan(&s.ID, &s.TenantID, &s.UserID, (*string)(&s.Status), &s.OpeningFloat,
		&s.ExpectedCash, &s.CountedCash, &s.OpenedAt, &closedAt, &verifiedAt); err != nil {
		return nil, mapDBError(err)
	}
	s.ClosedAt = timePtr(closedAt)
	s.VerifiedAt = timePtr(verifiedAt)
	return &s, nil
}

// AddAdjustment records a signed cash correction against a shift.
func (r *ShiftRepo) AddAdjustment(ctx context.Context, e domain.Executor, a *domain.CashAdjustment) error {
	_, err := e.Exec(ctx,
		`INSERT INTO cash_adjustments (id, tenant_id, shift_id, actor_id, amount, reason, override)
		 VALUES (:id, :tenant_id, :shift_id, :actor_id, :amount, :reason, :override)`,
		sql.Named("id", a.ID),
		sql.Named("shift_id", a.ShiftID),
		sql.Named("actor_id", a.ActorID),
		sql.Named("amount", a.Amount),
		sql.Named("reason", a.Reason),
		sql.Named("override", boolToInt(a.Override)),
	)
	return mapDBError(err)
}

// SetExpectedCash stores the recomputed expected drawer total.
func (r *ShiftRepo) SetExpectedCash(ctx context.Context, e domain.Executor, id string, expected int64) error {
	res, err := e.Exec(ctx,
		`UPDATE shifts SET expected_cash = :expected_cash WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("expected_cash", expected),
		sql.Named("id", id))
	if err != nil {
		return err
	}
	return requireRowAffected(res, "shift", id)
}

// Close closes an open shift with the counted drawer total.
func (r *ShiftRepo) Close(ctx context.Context, e domain.Executor, id string, counted int64, at time.Time) error {
	res, err := e.Exec(ctx,
		`UPDATE shifts SET status = 'CLOSED', counted_cash = :counted_cash, closed_at = :closed_at
		 WHERE id = :id AND tenant_id = :tenant_id AND status = 'OPEN'`,
		sql.Named("counted_cash", counted),
		sql.Named("closed_at", at),
		sql.Named("id", id))
	if err != nil {
		return err
	}
	return requireRowAffected(res, "open shift", id)
}

// Verify marks a closed shift as reconciled.
func (r *ShiftRepo) Verify(ctx context.Context, e domain.Executor, id string, at time.Time) error {
	res, err := e.Exec(ctx,
		`UPDATE shifts SET status = 'VERIFIED', verified_at = :verified_at
		 WHERE id = :id AND tenant_id = :tenant_id AND status = 'CLOSED'`,
		sql.Named("verified_at", at),
		sql.Named("id", id))
	if err != nil {
		return err
	}
	return requireRowAffected(res, "closed shift", id)
}

var _ domain.ShiftRepository = (*ShiftRepo)(nil)
