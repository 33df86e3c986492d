package engine

import (
	"context"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// InvoiceUpdate carries the fields ModifyInvoice may change.
type InvoiceUpdate struct {
	GuestName string
	Total     int64
	Notes     string
}

// ModifyInvoice rewrites the mutable fields of an issued invoice.
func (s *Service) ModifyInvoice(ctx context.Context, id string, upd InvoiceUpdate, g domain.GuardedRequest) (*domain.Invoice, error) {
	if upd.Total <= 0 {
		return nil, domain.ErrValidation("total must be positive")
	}
	var out *domain.Invoice
	err := s.run(ctx, g, func(tx domain.Executor) (*mutation, error) {
		inv, err := s.invoices.Get(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if inv.Status == domain.InvoiceVoid {
			return nil, domain.ErrConflict("invoice %s is void and cannot be modified", id)
		}
		old := inv.Snapshot()

		inv.GuestName = upd.GuestName
		inv.Total = upd.Total
		inv.Notes = upd.Notes
		if err := s.invoices.UpdateFields(ctx, tx, id, upd.GuestName, upd.Total, upd.Notes); err != nil {
			return nil, err
		}
		out = inv
		return &mutation{action: "MODIFY_INVOICE", risk: domain.RiskHigh, old: old, new: inv.Snapshot()}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("invoice modified", "invoice", id)
	return out, nil
}

// VoidInvoice voids an issued invoice. Voiding an already-void invoice
// returns ALREADY_VOIDED.
func (s *Service) VoidInvoice(ctx context.Context, id string, g domain.GuardedRequest) (*domain.Invoice, error) {
	var out *domain.Invoice
	err := s.run(ctx, g, func(tx domain.Executor) (*mutation, error) {
		inv, err := s.invoices.Get(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if inv.Status == domain.InvoiceVoid {
			return nil, domain.ErrAlreadyVoided(id)
		}
		old := inv.Snapshot()

		now := time.Now().UTC()
		voided, err := s.invoices.MarkVoid(ctx, tx, id, g.Reason, now)
		if err != nil {
			return nil, err
		}
		if !voided {
			return nil, domain.ErrAlreadyVoided(id)
		}
		inv.Status = domain.InvoiceVoid
		inv.VoidReason = g.Reason
		inv.VoidedAt = &now
		out = inv
		return &mutation{action: "VOID_INVOICE", risk: domain.RiskHigh, old: old, new: inv.Snapshot()}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("invoice voided", "invoice", id)
	return out, nil
}
