package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

type createRefundRequest struct {
	BookingID  string `json:"booking_id"`
	Amount     int64  `json:"amount"`
	ReasonCode string `json:"reason_code"`
	ReasonText string `json:"reason_text"`
}

type approveRefundRequest struct {
	RefundMode string `json:"refund_mode"`
}

type rejectRefundRequest struct {
	Note string `json:"note"`
}

type apiRefund struct {
	ID              string     `json:"id"`
	BookingID       string     `json:"booking_id"`
	RequestedAmount int64      `json:"requested_amount"`
	MaxRefundable   int64      `json:"max_refundable"`
	ReasonCode      string     `json:"reason_code"`
	ReasonText      string     `json:"reason_text,omitempty"`
	RequesterID     string     `json:"requester_id"`
	Status          string     `json:"status"`
	RefundMode      string     `json:"refund_mode,omitempty"`
	ApproverID      string     `json:"approver_id,omitempty"`
	ResolutionNote  string     `json:"resolution_note,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type apiCreditNote struct {
	ID              string    `json:"id"`
	RefundRequestID string    `json:"refund_request_id"`
	Number          int64     `json:"number"`
	Amount          int64     `json:"amount"`
	Mode            string    `json:"mode"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *Handler) createRefund(w http.ResponseWriter, r *http.Request) {
	var req createRefundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	out, err := h.refunds.Request(r.Context(), domain.CreateRefundRequest{
		BookingID:  req.BookingID,
		Amount:     req.Amount,
		ReasonCode: req.ReasonCode,
		ReasonText: req.ReasonText,
	})
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusCreated, refundToAPI(out))
}

func (h *Handler) getRefund(w http.ResponseWriter, r *http.Request) {
	out, err := h.refunds.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, refundToAPI(out))
}

func (h *Handler) approveRefund(w http.ResponseWriter, r *http.Request) {
	var req approveRefundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	// Clients send modes in either case; the domain values are lowercase.
	mode := domain.RefundMode(strings.ToLower(req.RefundMode))
	note, err := h.refunds.Approve(r.Context(), chi.URLParam(r, "id"), mode)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, creditNoteToAPI(note))
}

func (h *Handler) rejectRefund(w http.ResponseWriter, r *http.Request) {
	var req rejectRefundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	out, err := h.refunds.Reject(r.Context(), chi.URLParam(r, "id"), req.Note)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, refundToAPI(out))
}

func refundToAPI(r *domain.RefundRequest) apiRefund {
	return apiRefund{
		ID:              r.ID,
		BookingID:       r.BookingID,
		RequestedAmount: r.RequestedAmount,
		MaxRefundable:   r.MaxRefundable,
		ReasonCode:      r.ReasonCode,
		ReasonText:      r.ReasonText,
		RequesterID:     r.RequesterID,
		Status:          string(r.Status),
		RefundMode:      string(r.Mode),
		ApproverID:      r.ApproverID,
		ResolutionNote:  r.ResolutionNote,
		ResolvedAt:      r.ResolvedAt,
		CreatedAt:       r.CreatedAt,
	}
}

func creditNoteToAPI(n *domain.CreditNote) apiCreditNote {
	return apiCreditNote{
		ID:              n.ID,
		RefundRequestID: n.RefundRequestID,
		Number:          n.Number,
		Amount:          n.Amount,
		Mode:            string(n.Mode),
		CreatedAt:       n.CreatedAt,
	}
}
