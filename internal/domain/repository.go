package domain

import (
	"context"
	"time"
)

// Repositories are stateless: every method takes the Executor to run against,
// so the same repository serves both pool-backed calls and transactional
// flows. All statements are tenant-enforced through the Executor contract.

// UserRepository provides operations on staff users within the tenant.
type UserRepository interface {
	Create(ctx context.Context, e Executor, u *User) error
	Get(ctx context.Context, e Executor, id string) (*User, error)
	GetByEmail(ctx context.Context, e Executor, email string) (*User, error)
	List(ctx context.Context, e Executor, page PageRequest) ([]User, int64, error)
	SetPINHash(ctx context.Context, e Executor, id, pinHash string) error
	SetActive(ctx context.Context, e Executor, id string, active bool) error
	BumpTokenVersion(ctx context.Context, e Executor, id string) error
}

// BookingRepository provides the booking reads the refund workflow needs.
type BookingRepository interface {
	Create(ctx context.Context, e Executor, b *Booking) error
	Get(ctx context.Context, e Executor, id string) (*Booking, error)
}

// RefundRepository provides operations on refund requests.
type RefundRepository interface {
	Create(ctx context.Context, e Executor, r *RefundRequest) error
	Get(ctx context.Context, e Executor, id string) (*RefundRequest, error)
	// ResolvePending transitions a PENDING request to a terminal status with a
	// conditional update on status. Returns false when the request was not
	// PENDING, i.e. a concurrent resolver won the race.
	ResolvePending(ctx context.Context, e Executor, id string, status RefundStatus, approverID string, mode RefundMode, note string, at time.Time) (bool, error)
}

// CreditNoteRepository provides operations on credit notes.
type CreditNoteRepository interface {
	Insert(ctx context.Context, e Executor, n *CreditNote) error
	GetByRefundRequest(ctx context.Context, e Executor, refundRequestID string) (*CreditNote, error)
	// NextNumber allocates the next monotonic per-tenant credit note number.
	// Must be called inside the same transaction as the insert.
	NextNumber(ctx context.Context, e Executor) (int64, error)
	// TotalForBooking sums credit note amounts already issued against a booking.
	TotalForBooking(ctx context.Context, e Executor, bookingID string) (int64, error)
}

// InvoiceRepository provides operations on invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, e Executor, inv *Invoice) error
	Get(ctx context.Context, e Executor, id string) (*Invoice, error)
	UpdateFields(ctx context.Context, e Executor, id string, guestName string, total int64, notes string) error
	// MarkVoid voids an ISSUED invoice with a conditional update on status.
	// Returns false when the invoice was already void.
	MarkVoid(ctx context.Context, e Executor, id, reason string, at time.Time) (bool, error)
}

// ShiftRepository provides operations on cash shifts and adjustments.
type ShiftRepository interface {
	Create(ctx context.Context, e Executor, s *Shift) error
	Get(ctx context.Context, e Executor, id string) (*Shift, error)
	AddAdjustment(ctx context.Context, e Executor, a *CashAdjustment) error
	SetExpectedCash(ctx context.Context, e Executor, id string, expected int64) error
	Close(ctx context.Context, e Executor, id string, counted int64, at time.Time) error
	Verify(ctx context.Context, e Executor, id string, at time.Time) error
}

// SettingsRepository provides operations on per-tenant property settings.
type SettingsRepository interface {
	Get(ctx context.Context, e Executor) (*PropertySettings, error)
	Upsert(ctx context.Context, e Executor, s *PropertySettings) error
}

// AuditRepository provides append-only audit log access. There is
// deliberately no update or delete method.
type AuditRepository interface {
	Insert(ctx context.Context, e Executor, entry *AuditEntry) error
	List(ctx context.Context, e Executor, filter AuditFilter) ([]AuditEntry, int64, error)
}

// TenantRepository provisions and inspects tenants. It operates outside
// tenant scope and is backed by the unscoped admin layer; only the
// provisioning bootstrap and cross-tenant tooling use it.
type TenantRepository interface {
	Create(ctx context.Context, t *Tenant) error
	Get(ctx context.Context, id string) (*Tenant, error)
	List(ctx context.Context, page PageRequest) ([]Tenant, int64, error)
}
