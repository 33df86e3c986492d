// Package domain defines core types, interfaces, and errors for the HotelOS core.
package domain

import "fmt"

// Stable machine-readable error codes returned to API clients.
const (
	CodeTenantContextMissing         = "TENANT_CONTEXT_MISSING"
	CodeCrossTenantAccessDenied      = "CROSS_TENANT_ACCESS_DENIED"
	CodeSelfApprovalForbidden        = "SELF_APPROVAL_FORBIDDEN"
	CodeAlreadyResolved              = "ALREADY_RESOLVED"
	CodeAlreadyVoided                = "ALREADY_VOIDED"
	CodeReasonTooShort               = "REASON_TOO_SHORT"
	CodePasswordConfirmationFailed   = "PASSWORD_CONFIRMATION_FAILED"
	CodeInsufficientRefundableAmount = "INSUFFICIENT_REFUNDABLE_AMOUNT"
	CodeNotFound                     = "NOT_FOUND"
	CodeValidation                   = "VALIDATION_FAILED"
	CodeConflict                     = "CONFLICT"
	CodeAccessDenied                 = "ACCESS_DENIED"
)

// NotFoundError indicates a resource was not found within the caller's tenant.
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AccessDeniedError indicates the caller is not allowed to perform the action.
type AccessDeniedError struct {
	Code    string
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates the action conflicts with current state. Losing a
// resolution race surfaces as a ConflictError with CodeAlreadyResolved; that
// is an expected outcome under concurrency, not a system fault.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Code: CodeAccessDenied, Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// ErrTenantContextMissing is returned by the scoped data access layer when a
// tenant-enforced call is made with no tenant bound to the context.
func ErrTenantContextMissing() *AccessDeniedError {
	return &AccessDeniedError{Code: CodeTenantContextMissing, Message: "no tenant bound to request context"}
}

// ErrCrossTenantAccessDenied is returned when a caller references a row that
// belongs to another tenant.
func ErrCrossTenantAccessDenied() *AccessDeniedError {
	return &AccessDeniedError{Code: CodeCrossTenantAccessDenied, Message: "resource belongs to another tenant"}
}

// ErrSelfApprovalForbidden is returned when the requester of a refund attempts
// to approve or reject it.
func ErrSelfApprovalForbidden() *AccessDeniedError {
	return &AccessDeniedError{Code: CodeSelfApprovalForbidden, Message: "requester cannot resolve their own refund request"}
}

// ErrAlreadyResolved is returned when a refund request is no longer PENDING.
func ErrAlreadyResolved(id string) *ConflictError {
	return &ConflictError{Code: CodeAlreadyResolved, Message: fmt.Sprintf("refund request %s is already resolved", id)}
}

// ErrAlreadyVoided is returned on a repeated invoice void.
func ErrAlreadyVoided(id string) *ConflictError {
	return &ConflictError{Code: CodeAlreadyVoided, Message: fmt.Sprintf("invoice %s is already void", id)}
}

// ErrReasonTooShort is returned when a risk-gated action carries a
// justification shorter than the configured minimum.
func ErrReasonTooShort(min int) *ValidationError {
	return &ValidationError{Code: CodeReasonTooShort, Message: fmt.Sprintf("reason must be at least %d characters", min)}
}

// ErrPasswordConfirmationFailed is returned when credential re-confirmation
// does not match the actor's stored credential.
func ErrPasswordConfirmationFailed() *AccessDeniedError {
	return &AccessDeniedError{Code: CodePasswordConfirmationFailed, Message: "password confirmation failed"}
}

// ErrInsufficientRefundableAmount is returned when a requested refund exceeds
// what is still refundable on the booking.
func ErrInsufficientRefundableAmount(requested, refundable int64) *ValidationError {
	return &ValidationError{
		Code:    CodeInsufficientRefundableAmount,
		Message: fmt.Sprintf("requested %d exceeds refundable %d", requested, refundable),
	}
}
