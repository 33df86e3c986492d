// Package refund implements the maker-checker refund approval workflow.
package refund

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/governance"
)

// ApprovalService handles the refund request lifecycle. Requests are created
// PENDING by reception staff; a distinct approver resolves them. Approval and
// the resulting credit note commit in one transaction with the audit entry.
type ApprovalService struct {
	dal      domain.DataAccess
	bookings domain.BookingRepository
	refunds  domain.RefundRepository
	notes    domain.CreditNoteRepository
	audit    *governance.AuditService
	logger   *slog.Logger
}

// NewApprovalService creates an ApprovalService.
func NewApprovalService(dal domain.DataAccess, bookings domain.BookingRepository, refunds domain.RefundRepository, notes domain.CreditNoteRepository, audit *governance.AuditService, logger *slog.Logger) *ApprovalService {
	return &ApprovalService{dal: dal, bookings: bookings, refunds: refunds, notes: notes, audit: audit, logger: logger}
}

// Request opens a PENDING refund request against a booking. The requested
// amount is validated against what is still refundable: amount paid minus
// credit notes already issued for the booking.
func (s *ApprovalService) Request(ctx context.Context, req domain.CreateRefundRequest) (*domain.RefundRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrTenantContextMissing()
	}

	var out *domain.RefundRequest
	err := s.dal.Tx(ctx, func(tx domain.Executor) error {
		booking, err := s.bookings.Get(ctx, tx, req.BookingID)
		if err != nil {
			return err
		}
		issued, err := s.notes.TotalForBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		refundable := booking.AmountPaid - issued
		if req.Amount > refundable {
			return domain.ErrInsufficientRefundableAmount(req.Amount, refundable)
		}

		r := &domain.RefundRequest{
			ID:              domain.NewID(),
			TenantID:        actor.TenantID,
			BookingID:       booking.ID,
			RequestedAmount: req.Amount,
			MaxRefundable:   refundable,
			ReasonCode:      req.ReasonCode,
			ReasonText:      req.ReasonText,
			RequesterID:     actor.UserID,
			Status:          domain.RefundPending,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.refunds.Create(ctx, tx, r); err != nil {
			return err
		}
		_, err = s.audit.Write(ctx, tx, governance.Record{
			Action:    "REQUEST_REFUND",
			RiskLevel: domain.RiskLow,
			Reason:    req.ReasonCode,
			NewValues: snapshot(r),
		})
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("refund requested", "refund_request", out.ID, "booking", out.BookingID, "amount", out.RequestedAmount)
	return out, nil
}

// Get returns a refund request by id.
func (s *ApprovalService) Get(ctx context.Context, id string) (*domain.RefundRequest, error) {
	return s.refunds.Get(ctx, s.dal, id)
}

// Approve resolves a PENDING request as APPROVED and issues the credit note.
// The approver must differ from the requester, the request must still be
// PENDING, and the amount must still fit within what is refundable on the
// booking at approval time. A concurrent resolver losing the conditional
// update sees ALREADY_RESOLVED.
func (s *ApprovalService) Approve(ctx context.Context, id string, mode domain.RefundMode) (*domain.CreditNote, error) {
	if !domain.ValidRefundMode(mode) {
		return nil, domain.ErrValidation("unknown refund mode %q", mode)
	}
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrTenantContextMissing()
	}

	var note *domain.CreditNote
	err := s.dal.Tx(ctx, func(tx domain.Executor) error {
		r, err := s.refunds.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if r.Resolved() {
			return domain.ErrAlreadyResolved(r.ID)
		}
		if r.RequesterID == actor.UserID {
			return domain.ErrSelfApprovalForbidden()
		}

		booking, err := s.bookings.Get(ctx, tx, r.BookingID)
		if err != nil {
			return err
		}
		issued, err := s.notes.TotalForBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		refundable := booking.AmountPaid - issued
		if r.RequestedAmount > refundable {
			return domain.ErrInsufficientRefundableAmount(r.RequestedAmount, refundable)
		}

		now := time.Now().UTC()
		won, err := s.refunds.ResolvePending(ctx, tx, r.ID, domain.RefundApproved, actor.UserID, mode, "", now)
		if err != nil {
			return err
		}
		if !won {
			return domain.ErrAlreadyResolved(r.ID)
		}

		number, err := s.notes.NextNumber(ctx, tx)
		if err != nil {
			return err
		}
		note = &domain.CreditNote{
			ID:              domain.NewID(),
			TenantID:        actor.TenantID,
			RefundRequestID: r.ID,
			Number:          number,
			Amount:          r.RequestedAmount,
			Mode:            mode,
			CreatedAt:       now,
		}
		if err := s.notes.Insert(ctx, tx, note); err != nil {
			return err
		}

		old := snapshot(r)
		r.Status = domain.RefundApproved
		r.ApproverID = actor.UserID
		r.Mode = mode
		r.ResolvedAt = &now
		_, err = s.audit.Write(ctx, tx, governance.Record{
			Action:    "APPROVE_REFUND",
			RiskLevel: domain.RiskMedium,
			Reason:    r.ReasonCode,
			OldValues: old,
			NewValues: snapshot(r),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("refund approved", "refund_request", id, "credit_note", note.ID, "number", note.Number)
	return note, nil
}

// Reject resolves a PENDING request as REJECTED. A non-empty note explaining
// the rejection is required; no credit note is issued.
func (s *ApprovalService) Reject(ctx context.Context, id, resolutionNote string) (*domain.RefundRequest, error) {
	if strings.TrimSpace(resolutionNote) == "" {
		return nil, domain.ErrValidation("resolution note is required")
	}
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrTenantContextMissing()
	}

	var out *domain.RefundRequest
	err := s.dal.Tx(ctx, func(tx domain.Executor) error {
		r, err := s.refunds.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if r.Resolved() {
			return domain.ErrAlreadyResolved(r.ID)
		}
		if r.RequesterID == actor.UserID {
			return domain.ErrSelfApprovalForbidden()
		}

		now := time.Now().UTC()
		won, err := s.refunds.ResolvePending(ctx, tx, r.ID, domain.RefundRejected, actor.UserID, "", resolutionNote, now)
		if err != nil {
			return err
		}
		if !won {
			return domain.ErrAlreadyResolved(r.ID)
		}

		old := snapshot(r)
		r.Status = domain.RefundRejected
		r.ApproverID = actor.UserID
		r.ResolutionNote = resolutionNote
		r.ResolvedAt = &now
		if _, err := s.audit.Write(ctx, tx, governance.Record{
			Action:    "REJECT_REFUND",
			RiskLevel: domain.RiskMedium,
			Reason:    resolutionNote,
			OldValues: old,
			NewValues: snapshot(r),
		}); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("refund rejected", "refund_request", id)
	return out, nil
}

// snapshot captures the audit-relevant refund request fields.
func snapshot(r *domain.RefundRequest) map[string]any {
	return map[string]any{
		"status":           string(r.Status),
		"requested_amount": r.RequestedAmount,
		"refund_mode":      string(r.Mode),
		"approver_id":      r.ApproverID,
		"resolution_note":  r.ResolutionNote,
	}
}
