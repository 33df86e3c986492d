package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// InvoiceRepo implements domain.InvoiceRepository.
type InvoiceRepo struct{}

// NewInvoiceRepo creates a new InvoiceRepo.
func NewInvoiceRepo() *InvoiceRepo { return &InvoiceRepo{} }

// Create inserts an issued invoice.
func (r *InvoiceRepo) Create(ctx context.Context, e domain.Executor, inv *domain.Invoice) error {
	_, err := e.Exec(ctx,
		`INSERT INTO invoices (id, tenant_id, booking_id, number, guest_name, total, notes, status)
		 VALUES (:id, :tenant_id, :booking_id, :number, :guest_name, :total, :notes, 'ISSUED')`,
		sql.Named("id", inv.ID),
		sql.Named("booking_id", inv.BookingID),
		sql.Named("number", inv.Number),
		sql.Named("guest_name", inv.GuestName),
		sql.Named("total", inv.Total),
		sql.Named("notes", inv.Notes),
	)
	return mapDBError(err)
}

// Get returns an invoice by id within the tenant.
func (r *InvoiceRepo) Get(ctx context.Context, e domain.Executor, id string) (*domain.Invoice, error) {
	row, err := e.QueryRow(ctx,
		`SELECT id, tenant_id, booking_id, number, guest_name, total, notes, status, void_reason, issued_at, voided_at
		 FROM invoices WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	var inv domain.Invoice
	var voidedAt sql.NullTime
	if err := row.Scan(&inv.ID, &inv.TenantID, &inv.BookingID, &inv.Number, &inv.GuestName,
		&inv.Total, &inv.Notes, (*string)(&inv.Status), &inv.VoidReason, &inv.IssuedAt, &voidedAt); err != nil {
		return nil, mapDBError(err)
	}
	inv.VoidedAt = timePtr(voidedAt)
	return &inv, nil
}

// UpdateFields applies an administrative edit to the mutable invoice fields.
func (r *InvoiceRepo) UpdateFields(ctx context.Context, e domain.Executor, id string, guestName string, total int64, notes string) error {
	res, err := e.Exec(ctx,
		`UPDATE invoices SET guest_name = :guest_name, total = :total, notes = :notes
		 WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("guest_name", guestName),
		sql.Named("total", total),
		sql.Named("notes", notes),
		sql.Named("id", id))
	if err != nil {
		return err
	}
	return requireRowAffected(res, "invoice", id)
}

// MarkVoid voids an ISSUED invoice with a conditional update on status, so a
// repeated void observes zero rows and reports false.
func (r *InvoiceRepo) MarkVoid(ctx context.Context, e domain.Executor, id, reason string, at time.Time) (bool, error) {
	res, err := e.Exec(ctx,
		`UPDATE invoices SET status = 'VOID', void_reason = :void_reason, voided_at = :voided_at
		 WHERE id = :id AND tenant_id = :tenant_id AND status = 'ISSUED'`,
		sql.Named("void_reason", reason),
		sql.Named("voided_at", at),
		sql.Named("id", id))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

var _ domain.InvoiceRepository = (*InvoiceRepo)(nil)
