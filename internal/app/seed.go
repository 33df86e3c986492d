package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// SeedResult reports what the demo seed created.
type SeedResult struct {
	TenantID  string
	BookingID string
	InvoiceID string
	ShiftID   string
	Logins    map[string]string // email -> password
}

// SeedDemo provisions a demo tenant with an owner, a manager, and a
// receptionist, plus one paid booking, an issued invoice, and an open shift.
// Intended for local development only.
func (a *App) SeedDemo(ctx context.Context) (*SeedResult, error) {
	tenant := &domain.Tenant{
		ID:            domain.NewID(),
		Name:          "Demo Hotel",
		BillingStatus: "active",
	}
	if err := a.Tenants.Create(domain.WithProvisioning(ctx), tenant); err != nil {
		return nil, fmt.Errorf("provision demo tenant: %w", err)
	}

	scoped := domain.WithActor(ctx, domain.Actor{TenantID: tenant.ID, UserID: "seed"})

	result := &SeedResult{TenantID: tenant.ID, Logins: map[string]string{}}
	staff := []struct {
		email, name, password string
		role                  domain.Role
	}{
		{"owner@demo.hotel", "Demo Owner", "owner-pass-123", domain.RoleOwner},
		{"manager@demo.hotel", "Demo Manager", "manager-pass-123", domain.RoleManager},
		{"reception@demo.hotel", "Demo Reception", "reception-pass-123", domain.RoleReception},
	}
	var ownerID string
	for _, s := range staff {
		hash, err := a.Services.Credentials.HashPassword(s.password)
		if err != nil {
			return nil, err
		}
		u := &domain.User{
			ID:             domain.NewID(),
			TenantID:       tenant.ID,
			Email:          s.email,
			DisplayName:    s.name,
			Role:           s.role,
			CredentialHash: hash,
			Active:         true,
			CreatedAt:      time.Now().UTC(),
		}
		if err := a.Users.Create(scoped, a.DAL, u); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", s.email, err)
		}
		if s.role == domain.RoleOwner {
			ownerID = u.ID
		}
		result.Logins[s.email] = s.password
	}

	booking := &domain.Booking{
		ID:         domain.NewID(),
		TenantID:   tenant.ID,
		Code:       "BK-1001",
		GuestName:  "Asha Verma",
		AmountPaid: 300000, // 3,000.00 in minor units
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.Bookings.Create(scoped, a.DAL, booking); err != nil {
		return nil, fmt.Errorf("seed booking: %w", err)
	}
	result.BookingID = booking.ID

	invoice := &domain.Invoice{
		ID:        domain.NewID(),
		TenantID:  tenant.ID,
		BookingID: booking.ID,
		Number:    "INV-1001",
		GuestName: booking.GuestName,
		Total:     booking.AmountPaid,
		Status:    domain.InvoiceIssued,
		IssuedAt:  time.Now().UTC(),
	}
	if err := a.Invoices.Create(scoped, a.DAL, invoice); err != nil {
		return nil, fmt.Errorf("seed invoice: %w", err)
	}
	result.InvoiceID = invoice.ID

	shift := &domain.Shift{
		ID:           domain.NewID(),
		TenantID:     tenant.ID,
		UserID:       ownerID,
		Status:       domain.ShiftOpen,
		OpeningFloat: 50000,
		ExpectedCash: 50000,
		OpenedAt:     time.Now().UTC(),
	}
	if err := a.Shifts.Create(scoped, a.DAL, shift); err != nil {
		return nil, fmt.Errorf("seed shift: %w", err)
	}
	result.ShiftID = shift.ID

	return result, nil
}
