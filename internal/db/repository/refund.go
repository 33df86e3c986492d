package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// RefundRepo implements domain.RefundRepository.
type RefundRepo struct{}

// NewRefundRepo creates a new RefundRepo.
func NewRefundRepo() *RefundRepo { return &RefundRepo{} }

const refundColumns = `id, tenant_id, booking_id, requested_amount, max_refundable, reason_code, reason_text,
	requester_id, status, refund_mode, approver_id, resolution_note, resolved_at, created_at`

// Create inserts a PENDING refund request.
func (r *RefundRepo) Create(ctx context.Context, e domain.Executor, req *domain.RefundRequest) error {
	_, err := e.Exec(ctx,
		`INSERT INTO refund_requests
		 (id, tenant_id, booking_id, requested_amount, max_refundable, reason_code, reason_text, requester_id, status)
		 VALUES (:id, :tenant_id, :booking_id, :requested_amount, :max_refundable, :reason_code, :reason_text, :requester_id, 'PENDING')`,
		sql.Named("id", req.ID),
		sql.Named("booking_id", req.BookingID),
		sql.Named("requested_amount", req.RequestedAmount),
		sql.Named("max_refundable", req.MaxRefundable),
		sql.Named("reason_code", req.ReasonCode),
		sql.Named("reason_text", req.ReasonText),
		sql.Named("requester_id", req.RequesterID),
	)
	return mapDBError(err)
}

// Get returns a refund request by id within the tenant.
func (r *RefundRepo) Get(ctx context.Context, e domain.Executor, id string) (*domain.RefundRequest, error) {
	row, err := e.QueryRow(ctx,
		`SELECT `+refundColumns+` FROM refund_requests WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	var req domain.RefundRequest
	var resolvedAt sql.NullTime
	if err := row.Scan(&req.ID, &req.TenantID, &req.BookingID, &req.RequestedAmount, &req.MaxRefundable,
		&req.ReasonCode, &req.ReasonText, &req.RequesterID, (*string)(&req.Status), (*string)(&req.Mode),
		&req.ApproverID, &req.ResolutionNote, &resolvedAt, &req.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	req.ResolvedAt = timePtr(resolvedAt)
	return &req, nil
}

// ResolvePending is the compare-and-set transition out of PENDING. The WHERE
// clause on status makes exactly one of two concurrent resolvers win; the
// loser sees zero rows affected and reports false.
func (r *RefundRepo) ResolvePending(ctx context.Context, e domain.Executor, id string, status domain.RefundStatus, approverID string, mode domain.RefundMode, note string, at time.Time) (bool, error) {
	res, err := e.Exec(ctx,
		`UPDATE refund_requests
		 SET status = :status, approver_id = :approver_id, refund_mode = :refund_mode,
		     resolution_note = :resolution_note, resolved_at = :resolved_at
		 WHERE id = :id AND tenant_id = :tenant_id AND status = 'PENDING'`,
		sql.Named("status", string(status)),
		sql.Named("approver_id", approverID),
		sql.Named("refund_mode", string(mode)),
		sql.Named("resolution_note", note),
		sql.Named("resolved_at", at),
		sql.Named("id", id),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

var _ domain.RefundRepository = (*RefundRepo)(nil)

// CreditNoteRepo implements domain.CreditNoteRepository.
type CreditNoteRepo struct{}

// NewCreditNoteRepo creates a new CreditNoteRepo.
func NewCreditNoteRepo() *CreditNoteRepo { return &CreditNoteRepo{} }

// Insert persists a credit note.
func (r *CreditNoteRepo) Insert(ctx context.Context, e domain.Executor, n *domain.CreditNote) error {
	_, err := e.Exec(ctx,
		`INSERT INTO credit_notes (id, tenant_id, refund_request_id, number, amount, mode)
		 VALUES (:id, :tenant_id, :refund_request_id, :number, :amount, :mode)`,
		sql.Named("id", n.ID),
		sql.Named("refund_request_id", n.RefundRequestID),
		sql.Named("number", n.Number),
		sql.Named("amount", n.Amount),
		sql.Named("mode", string(n.Mode)),
	)
	return mapDBError(err)
}

// GetByRefundRequest returns the credit note issued for a refund request.
func (r *CreditNoteRepo) GetByRefundRequest(ctx context.Context, e domain.Executor, refundRequestID string) (*domain.CreditNote, error) {
	row, err := e.QueryRow(ctx,
		`SELECT id, tenant_id, refund_request_id, number, amount, mode, created_at
		 FROM credit_notes WHERE refund_request_id = :refund_request_id AND tenant_id = :tenant_id`,
		sql.Named("refund_request_id", refundRequestID))
	if err != nil {
		return nil, err
	}
	var n domain.CreditNote
	if err := row.Scan(&n.ID, &n.TenantID, &n.RefundRequestID, &n.Number, &n.Amount, (*string)(&n.Mode), &n.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &n, nil
}

// NextNumber allocates the next per-tenant credit note number. Safe only
// inside the same transaction as the insert: the single-connection write pool
// serializes writers, and UNIQUE(tenant_id, number) backstops the invariant.
func (r *CreditNoteRepo) NextNumber(ctx context.Context, e domain.Executor) (int64, error) {
	row, err := e.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM credit_notes WHERE tenant_id = :tenant_id`)
	if err != nil {
		return 0, err
	}
	var next int64
	if err := row.Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// TotalForBooking sums credit note amounts already issued for a booking.
func (r *CreditNoteRepo) TotalForBooking(ctx context.Context, e domain.Executor, bookingID string) (int64, error) {
	row, err := e.QueryRow(ctx,
		`SELECT COALESCE(SUM(cn.amount), 0)
		 FROM credit_notes cn
		 JOIN refund_requests rr ON rr.id = cn.refund_request_id AND rr.tenant_id = cn.tenant_id
		 WHERE rr.booking_id = :booking_id AND cn.tenant_id = :tenant_id`,
		sql.Named("booking_id", bookingID))
	if err != nil {
		return 0, err
	}
	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

var _ domain.CreditNoteRepository = (*CreditNoteRepo)(nil)
