package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/middleware"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// codeFromDomainError extracts the stable machine-readable code from a domain
// error. Unknown errors get INTERNAL.
func codeFromDomainError(err error) string {
	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &notFound):
		return notFound.Code
	case errors.As(err, &accessDenied):
		return accessDenied.Code
	case errors.As(err, &validation):
		return validation.Code
	case errors.As(err, &conflict):
		return conflict.Code
	default:
		return "INTERNAL"
	}
}

// writeError renders a domain error as the standard error envelope. Unexpected
// errors are logged with the request ID and surfaced as a generic 500 without
// leaking internals.
func writeError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("unhandled error",
			"error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"path", r.URL.Path)
		msg = "internal server error"
	}
	writeJSON(w, status, envelope{
		Success: false,
		Error:   &apiError{Code: codeFromDomainError(err), Message: msg},
	})
}
