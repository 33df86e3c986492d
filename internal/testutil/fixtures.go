// Package testutil provides shared fixtures for service and repository tests:
// a migrated temp database and canned tenants, users, and bookings.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db/repository"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// NewDAL opens a migrated temp database and returns the tenant-enforced layer
// plus the raw pools for direct assertions.
func NewDAL(t *testing.T) (*db.TenantDB, *sql.DB, *sql.DB) {
	t.Helper()
	write, read := db.OpenTestSQLite(t)
	return db.NewTenantDB(write, read), write, read
}

// InsertTenant inserts a tenant row directly. Provisioning through the
// audited admin layer has its own tests.
func InsertTenant(t *testing.T, write *sql.DB, id, name string) {
	t.Helper()
	_, err := write.Exec(
		`INSERT INTO tenants (id, name, billing_status) VALUES (?, ?, 'active')`, id, name)
	if err != nil {
		t.Fatalf("insert tenant %s: %v", id, err)
	}
}

// InsertUser creates an active staff user with a bcrypt credential. MinCost
// keeps the hashing fast in tests.
func InsertUser(t *testing.T, dal *db.TenantDB, tenantID, email string, role domain.Role, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:             domain.NewID(),
		TenantID:       tenantID,
		Email:          email,
		DisplayName:    email,
		Role:           role,
		CredentialHash: string(hash),
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	ctx := domain.WithActor(context.Background(), domain.Actor{TenantID: tenantID, UserID: "fixture"})
	if err := repository.NewUserRepo().Create(ctx, dal, u); err != nil {
		t.Fatalf("insert user %s: %v", email, err)
	}
	return u
}

// Ctx returns a request context with the user bound as actor.
func Ctx(u *domain.User) context.Context {
	return domain.WithActor(context.Background(), domain.Actor{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Role:     u.Role,
		IP:       "127.0.0.1",
	})
}

// InsertBooking creates a paid booking within the actor's tenant.
func InsertBooking(t *testing.T, ctx context.Context, dal *db.TenantDB, amountPaid int64) *domain.Booking {
	t.Helper()
	actor, _ := domain.ActorFromContext(ctx)
	b := &domain.Booking{
		ID:         domain.NewID(),
		TenantID:   actor.TenantID,
		Code:       "BK-" + b6(),
		GuestName:  "Test Guest",
		AmountPaid: amountPaid,
		CreatedAt:  time.Now().UTC(),
	}
	if err := repository.NewBookingRepo().Create(ctx, dal, b); err != nil {
		t.Fatalf("insert booking: %v", err)
	}
	return b
}

// InsertInvoice creates an issued invoice for a booking.
func InsertInvoice(t *testing.T, ctx context.Context, dal *db.TenantDB, bookingID string, total int64) *domain.Invoice {
	t.Helper()
	actor, _ := domain.ActorFromContext(ctx)
	inv := &domain.Invoice{
		ID:        domain.NewID(),
		TenantID:  actor.TenantID,
		BookingID: bookingID,
		Number:    "INV-" + b6(),
		GuestName: "Test Guest",
		Total:     total,
		Status:    domain.InvoiceIssued,
		IssuedAt:  time.Now().UTC(),
	}
	if err := repository.NewInvoiceRepo().Create(ctx, dal, inv); err != nil {
		t.Fatalf("insert invoice: %v", err)
	}
	return inv
}

// InsertShift creates a shift in the given status for the actor.
func InsertShift(t *testing.T, ctx context.Context, dal *db.TenantDB, status domain.ShiftStatus, verifiedAt *time.Time) *domain.Shift {
	t.Helper()
	actor, _ := domain.ActorFromContext(ctx)
	s := &domain.Shift{
		ID:           domain.NewID(),
		TenantID:     actor.TenantID,
		UserID:       actor.UserID,
		Status:       domain.ShiftOpen,
		OpeningFloat: 10000,
		ExpectedCash: 10000,
		OpenedAt:     time.Now().UTC(),
	}
	repo := repository.NewShiftRepo()
	if err := repo.Create(ctx, dal, s); err != nil {
		t.Fatalf("insert shift: %v", err)
	}
	now := time.Now().UTC()
	if status == domain.ShiftClosed || status == domain.ShiftVerified {
		if err := repo.Close(ctx, dal, s.ID, s.ExpectedCash, now); err != nil {
			t.Fatalf("close shift: %v", err)
		}
		s.Status = domain.ShiftClosed
	}
	if status == domain.ShiftVerified {
		at := now
		if verifiedAt != nil {
			at = *verifiedAt
		}
		if err := repo.Verify(ctx, dal, s.ID, at); err != nil {
			t.Fatalf("verify shift: %v", err)
		}
		s.Status = domain.ShiftVerified
		s.VerifiedAt = &at
	}
	return s
}

// b6 returns a short unique suffix for codes and numbers.
func b6() string {
	return domain.NewID()[:6]
}
