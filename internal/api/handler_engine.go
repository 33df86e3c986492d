package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/engine"
)

// guardedFields carries the justification and credential re-confirmation
// every engine request must include.
type guardedFields struct {
	Reason          string `json:"reason"`
	ConfirmPassword string `json:"confirm_password"`
}

func (g guardedFields) toDomain() domain.GuardedRequest {
	return domain.GuardedRequest{Reason: g.Reason, ConfirmPassword: g.ConfirmPassword}
}

type modifyInvoiceRequest struct {
	guardedFields
	GuestName string `json:"guest_name"`
	Total     int64  `json:"total"`
	Notes     string `json:"notes"`
}

type apiInvoice struct {
	ID         string     `json:"id"`
	BookingID  string     `json:"booking_id"`
	Number     string     `json:"number"`
	GuestName  string     `json:"guest_name"`
	Total      int64      `json:"total"`
	Notes      string     `json:"notes,omitempty"`
	Status     string     `json:"status"`
	VoidReason string     `json:"void_reason,omitempty"`
	IssuedAt   time.Time  `json:"issued_at"`
	VoidedAt   *time.Time `json:"voided_at,omitempty"`
}

func (h *Handler) modifyInvoice(w http.ResponseWriter, r *http.Request) {
	var req modifyInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	inv, err := h.engine.ModifyInvoice(r.Context(), chi.URLParam(r, "id"), engine.InvoiceUpdate{
		GuestName: req.GuestName,
		Total:     req.Total,
		Notes:     req.Notes,
	}, req.toDomain())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, invoiceToAPI(inv))
}

func (h *Handler) voidInvoice(w http.ResponseWriter, r *http.Request) {
	var req guardedFields
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	inv, err := h.engine.VoidInvoice(r.Context(), chi.URLParam(r, "id"), req.toDomain())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, invoiceToAPI(inv))
}

type cashAdjustRequest struct {
	guardedFields
	ShiftID  string `json:"shift_id"`
	Amount   int64  `json:"amount"`
	Override bool   `json:"override"`
}

type apiShift struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ExpectedCash int64  `json:"expected_cash"`
	CountedCash  int64  `json:"counted_cash"`
}

func (h *Handler) adjustCash(w http.ResponseWriter, r *http.Request) {
	var req cashAdjustRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	shift, err := h.engine.AdjustCash(r.Context(), engine.CashAdjustRequest{
		ShiftID:  req.ShiftID,
		Amount:   req.Amount,
		Override: req.Override,
	}, req.toDomain())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, apiShift{
		ID:           shift.ID,
		Status:       string(shift.Status),
		ExpectedCash: shift.ExpectedCash,
		CountedCash:  shift.CountedCash,
	})
}

type dataLockRequest struct {
	guardedFields
	LockedUntil *time.Time `json:"locked_until"` // null clears the lock
}

type maintenanceRequest struct {
	guardedFields
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

type apiSettings struct {
	DataLockedUntil    *time.Time `json:"data_locked_until,omitempty"`
	MaintenanceEnabled bool       `json:"maintenance_enabled"`
	MaintenanceMessage string     `json:"maintenance_message,omitempty"`
}

func (h *Handler) setDataLock(w http.ResponseWriter, r *http.Request) {
	var req dataLockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	s, err := h.engine.SetDataLock(r.Context(), req.LockedUntil, req.toDomain())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, settingsToAPI(s))
}

func (h *Handler) setMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	s, err := h.engine.SetMaintenance(r.Context(), req.Enabled, req.Message, req.toDomain())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, settingsToAPI(s))
}

type blockStaffRequest struct {
	guardedFields
	Blocked bool `json:"blocked"`
}

func (h *Handler) resetStaffPIN(w http.ResponseWriter, r *http.Request) {
	var req guardedFields
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	pin, err := h.engine.ResetStaffPIN(r.Context(), chi.URLParam(r, "id"), req.toDomain())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	// The PIN is returned exactly once and never stored in the clear.
	writeData(w, http.StatusOK, map[string]string{"pin": pin})
}

func (h *Handler) setStaffBlocked(w http.ResponseWriter, r *http.Request) {
	var req blockStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if err := h.engine.SetStaffBlocked(r.Context(), chi.URLParam(r, "id"), req.Blocked, req.toDomain()); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"blocked": req.Blocked})
}

func (h *Handler) forceLogout(w http.ResponseWriter, r *http.Request) {
	var req guardedFields
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if err := h.engine.ForceLogout(r.Context(), chi.URLParam(r, "id"), req.toDomain()); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"logged_out": true})
}

func invoiceToAPI(inv *domain.Invoice) apiInvoice {
	return apiInvoice{
		ID:         inv.ID,
		BookingID:  inv.BookingID,
		Number:     inv.Number,
		GuestName:  inv.GuestName,
		Total:      inv.Total,
		Notes:      inv.Notes,
		Status:     string(inv.Status),
		VoidReason: inv.VoidReason,
		IssuedAt:   inv.IssuedAt,
		VoidedAt:   inv.VoidedAt,
	}
}

func settingsToAPI(s *domain.PropertySettings) apiSettings {
	return apiSettings{
		DataLockedUntil:    s.DataLockedUntil,
		MaintenanceEnabled: s.MaintenanceEnabled,
		MaintenanceMessage: s.MaintenanceMessage,
	}
}
