package repository

import (
	"context"
	"database/sql"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// BookingRepo implements domain.BookingRepository.
type BookingRepo struct{}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo() *BookingRepo { return &BookingRepo{} }

// Create inserts a booking.
func (r *BookingRepo) Create(ctx context.Context, e domain.Executor, b *domain.Booking) error {
	_, err := e.Exec(ctx,
		`INSERT INTO bookings (id, tenant_id, code, guest_name, amount_paid)
		 VALUES (:id, :tenant_id, :code, :guest_name, :amount_paid)`,
		sql.Named("id", b.ID),
		sql.Named("code", b.Code),
		sql.Named("guest_name", b.GuestName),
		sql.Named("amount_paid", b.AmountPaid),
	)
	return mapDBError(err)
}

// Get returns a booking by id within the tenant.
func (r *BookingRepo) Get(ctx context.Context, e domain.Executor, id string) (*domain.Booking, error) {
	row, err := e.QueryRow(ctx,
		`SELECT id, tenant_id, code, guest_name, amount_paid, created_at
		 FROM bookings WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.TenantID, &b.Code, &b.GuestName, &b.AmountPaid, &b.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &b, nil
}

var _ domain.BookingRepository = (*BookingRepo)(nil)
