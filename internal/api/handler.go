// Package api implements the HTTP handlers for the HotelOS core.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/middleware"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/engine"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/governance"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/refund"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/security"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	sessions *security.SessionService
	oidc     *middleware.OIDCVerifier // nil when SSO is not configured
	refunds  *refund.ApprovalService
	engine   *engine.Service
	audit    *governance.AuditService
	logger   *slog.Logger
}

// NewHandler creates the API handler. oidc may be nil.
func NewHandler(sessions *security.SessionService, oidc *middleware.OIDCVerifier, refunds *refund.ApprovalService, eng *engine.Service, audit *governance.AuditService, logger *slog.Logger) *Handler {
	return &Handler{sessions: sessions, oidc: oidc, refunds: refunds, engine: eng, audit: audit, logger: logger}
}

// Routes mounts the API on the router. Auth and role checks run in
// middleware; handlers assume an actor is bound to the context.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.healthz)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/sso", h.loginSSO)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.sessions))

		r.Route("/api/refunds", func(r chi.Router) {
			r.With(middleware.RequireRole(domain.RoleReception, domain.RoleManager, domain.RoleOwner)).
				Post("/", h.createRefund)
			r.Get("/{id}", h.getRefund)
			r.With(middleware.RequireRole(domain.RoleManager, domain.RoleOwner)).
				Post("/{id}/approve", h.approveRefund)
			r.With(middleware.RequireRole(domain.RoleManager, domain.RoleOwner)).
				Post("/{id}/reject", h.rejectRefund)
		})

		r.Route("/api/engine", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleOwner))
			r.Post("/invoice/{id}/modify", h.modifyInvoice)
			r.Post("/invoice/{id}/void", h.voidInvoice)
			r.Post("/cash-adjust", h.adjustCash)
			r.Post("/data-lock", h.setDataLock)
			r.Post("/maintenance", h.setMaintenance)
			r.Post("/staff/{id}/pin", h.resetStaffPIN)
			r.Post("/staff/{id}/block", h.setStaffBlocked)
			r.Post("/staff/{id}/logout", h.forceLogout)
		})

		r.With(middleware.RequireRole(domain.RoleOwner, domain.RoleAccountant)).
			Get("/api/audit", h.listAudit)
	})
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}
