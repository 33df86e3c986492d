package api

import (
	"net/http"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

type apiAuditEntry struct {
	ID                string           `json:"id"`
	ActorID           string           `json:"actor_id"`
	Action            string           `json:"action"`
	RiskLevel         string           `json:"risk_level"`
	Reason            string           `json:"reason,omitempty"`
	OldValues         map[string]any   `json:"old_values,omitempty"`
	NewValues         map[string]any   `json:"new_values,omitempty"`
	Diff              map[string][]any `json:"diff,omitempty"`
	PasswordConfirmed bool             `json:"password_confirmed"`
	IPAddress         string           `json:"ip_address,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

type auditListResponse struct {
	Entries       []apiAuditEntry `json:"entries"`
	Total         int64           `json:"total"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{Page: pageFromQuery(r)}
	q := r.URL.Query()
	if v := q.Get("actor_id"); v != "" {
		filter.ActorID = &v
	}
	if v := q.Get("risk_level"); v != "" {
		rl := domain.RiskLevel(v)
		if !domain.ValidRiskLevel(rl) {
			writeError(w, h.logger, r, domain.ErrValidation("unknown risk level %q", v))
			return
		}
		filter.RiskLevel = &rl
	}
	if v := q.Get("action"); v != "" {
		filter.Action = &v
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, h.logger, r, domain.ErrValidation("invalid from timestamp"))
			return
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, h.logger, r, domain.ErrValidation("invalid to timestamp"))
			return
		}
		filter.To = &t
	}

	entries, total, err := h.audit.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	out := make([]apiAuditEntry, len(entries))
	for i, e := range entries {
		out[i] = apiAuditEntry{
			ID:                e.ID,
			ActorID:           e.ActorID,
			Action:            e.Action,
			RiskLevel:         string(e.RiskLevel),
			Reason:            e.Reason,
			OldValues:         e.OldValues,
			NewValues:         e.NewValues,
			Diff:              e.Diff,
			PasswordConfirmed: e.PasswordConfirmed,
			IPAddress:         e.IPAddress,
			CreatedAt:         e.CreatedAt,
		}
	}
	writeData(w, http.StatusOK, auditListResponse{
		Entries:       out,
		Total:         total,
		NextPageToken: domain.NextPageToken(filter.Page.Offset(), filter.Page.Limit(), total),
	})
}
