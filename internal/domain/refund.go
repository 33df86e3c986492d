package domain

import "time"

// RefundStatus is the state of a refund request. PENDING is the only
// non-terminal state.
type RefundStatus string

const (
	RefundPending  RefundStatus = "PENDING"
	RefundApproved RefundStatus = "APPROVED"
	RefundRejected RefundStatus = "REJECTED"
)

// RefundMode is how an approved refund is paid out.
type RefundMode string

const (
	RefundModeCash       RefundMode = "cash"
	RefundModeCard       RefundMode = "card"
	RefundModeBank       RefundMode = "bank_transfer"
	RefundModeCreditNote RefundMode = "credit_note"
)

// ValidRefundMode reports whether m is a known refund mode.
func ValidRefundMode(m RefundMode) bool {
	switch m {
	case RefundModeCash, RefundModeCard, RefundModeBank, RefundModeCreditNote:
		return true
	}
	return false
}

// Booking is the minimal booking view the refund workflow needs: what was
// paid, so the refundable ceiling can be recomputed at approval time.
type Booking struct {
	ID         string
	TenantID   string
	Code       string
	GuestName  string
	AmountPaid int64 // minor currency units
	CreatedAt  time.Time
}

// RefundRequest is a maker-checker refund. The requester creates it PENDING;
// a distinct approver resolves it. Terminal once resolved.
type RefundRequest struct {
	ID              string
	TenantID        string
	BookingID       string
	RequestedAmount int64
	MaxRefundable   int64 // refundable ceiling captured at request time
	ReasonCode      string
	ReasonText      string
	RequesterID     string
	Status          RefundStatus
	Mode            RefundMode // set on approval
	ApproverID      string     // set on resolution, never equals RequesterID
	ResolutionNote  string     // set on rejection
	ResolvedAt      *time.Time
	CreatedAt       time.Time
}

// Resolved reports whether the request has reached a terminal state.
func (r *RefundRequest) Resolved() bool { return r.Status != RefundPending }

// CreditNote is the financial instrument issued on refund approval. One per
// approved request; numbered uniquely and monotonically per tenant.
type CreditNote struct {
	ID              string
	TenantID        string
	RefundRequestID string
	Number          int64
	Amount          int64
	Mode            RefundMode
	CreatedAt       time.Time
}

// CreateRefundRequest holds parameters for opening a refund request.
type CreateRefundRequest struct {
	BookingID  string
	Amount     int64
	ReasonCode string
	ReasonText string
}

// Validate checks that the request is well-formed.
func (r *CreateRefundRequest) Validate() error {
	if r.BookingID == "" {
		return ErrValidation("booking_id is required")
	}
	if r.Amount <= 0 {
		return ErrValidation("amount must be positive")
	}
	if r.ReasonCode == "" {
		return ErrValidation("reason_code is required")
	}
	return nil
}
