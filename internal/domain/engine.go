package domain

import "time"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceIssued InvoiceStatus = "ISSUED"
	InvoiceVoid   InvoiceStatus = "VOID"
)

// Invoice is a tenant-scoped billing document subject to risk-gated mutation.
type Invoice struct {
	ID         string
	TenantID   string
	BookingID  string
	Number     string
	GuestName  string
	Total      int64 // minor currency units
	Notes      string
	Status     InvoiceStatus
	VoidReason string
	IssuedAt   time.Time
	VoidedAt   *time.Time
}

// Snapshot captures the mutable invoice fields for audit diffing.
func (i *Invoice) Snapshot() map[string]any {
	return map[string]any{
		"guest_name":  i.GuestName,
		"total":       i.Total,
		"notes":       i.Notes,
		"status":      string(i.Status),
		"void_reason": i.VoidReason,
	}
}

// ShiftStatus is the lifecycle state of a cash shift.
type ShiftStatus string

const (
	ShiftOpen     ShiftStatus = "OPEN"
	ShiftClosed   ShiftStatus = "CLOSED"
	ShiftVerified ShiftStatus = "VERIFIED"
)

// Shift is one cashier shift with a reconciled cash drawer.
type Shift struct {
	ID           string
	TenantID     string
	UserID       string
	Status       ShiftStatus
	OpeningFloat int64
	ExpectedCash int64
	CountedCash  int64
	OpenedAt     time.Time
	ClosedAt     *time.Time
	VerifiedAt   *time.Time
}

// Snapshot captures the mutable shift fields for audit diffing.
func (s *Shift) Snapshot() map[string]any {
	return map[string]any{
		"status":        string(s.Status),
		"expected_cash": s.ExpectedCash,
		"counted_cash":  s.CountedCash,
	}
}

// CashAdjustment is a signed correction applied to a shift's expected cash.
type CashAdjustment struct {
	ID        string
	TenantID  string
	ShiftID   string
	ActorID   string
	Amount    int64 // signed delta
	Reason    string
	Override  bool // set when adjusting a verified shift past the grace window
	CreatedAt time.Time
}

// PropertySettings holds per-tenant operational switches subject to
// risk-gated mutation.
type PropertySettings struct {
	TenantID           string
	DataLockedUntil    *time.Time
	MaintenanceEnabled bool
	MaintenanceMessage string
	UpdatedAt          time.Time
}

// Snapshot captures the settings fields for audit diffing.
func (p *PropertySettings) Snapshot() map[string]any {
	var locked any
	if p.DataLockedUntil != nil {
		locked = p.DataLockedUntil.UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"data_locked_until":   locked,
		"maintenance_enabled": p.MaintenanceEnabled,
		"maintenance_message": p.MaintenanceMessage,
	}
}

// GuardedRequest carries the justification and credential re-confirmation
// every risk-gated mutation requires.
type GuardedRequest struct {
	Reason          string
	ConfirmPassword string
}
