// Package app provides application-level wiring and dependency injection
// for the HotelOS core following hexagonal architecture.
package app

import (
	"database/sql"
	"log/slog"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/config"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db/repository"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/engine"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/governance"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/refund"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/security"
)

// Deps holds the external dependencies that main() must provide: config,
// database pools, and the root logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler and admin CLI need.
type Services struct {
	Credentials *security.CredentialService
	Sessions    *security.SessionService
	Audit       *governance.AuditService
	Refunds     *refund.ApprovalService
	Engine      *engine.Service
}

// App holds the fully-wired application.
type App struct {
	Services Services
	DAL      *db.TenantDB
	Admin    *db.AdminDB
	Tenants  domain.TenantRepository
	Users    domain.UserRepository
	Bookings domain.BookingRepository
	Invoices domain.InvoiceRepository
	Shifts   domain.ShiftRepository
}

// New wires repositories and services from the provided deps. The unscoped
// admin layer shares the audit repository so its statements are audited with
// everyone else's.
func New(deps Deps) *App {
	cfg := deps.Cfg

	dal := db.NewTenantDB(deps.WriteDB, deps.ReadDB)
	admin := db.NewAdminDB(deps.WriteDB, deps.ReadDB)

	userRepo := repository.NewUserRepo()
	bookingRepo := repository.NewBookingRepo()
	refundRepo := repository.NewRefundRepo()
	noteRepo := repository.NewCreditNoteRepo()
	invoiceRepo := repository.NewInvoiceRepo()
	shiftRepo := repository.NewShiftRepo()
	settingsRepo := repository.NewSettingsRepo()
	auditRepo := repository.NewAuditRepo()
	tenantRepo := repository.NewTenantRepo(admin)

	admin.SetAuditWriter(auditRepo)

	creds := security.NewCredentialService(cfg.Auth.BcryptCost)
	sessions := security.NewSessionService(dal, userRepo, creds,
		[]byte(cfg.Auth.JWTSecret), cfg.Auth.SessionTTL,
		deps.Logger.With("component", "sessions"))
	guard := security.NewGuard(dal, userRepo, creds, cfg.Auth.MinReasonLen)

	auditSvc := governance.NewAuditService(dal, auditRepo)
	refundSvc := refund.NewApprovalService(dal, bookingRepo, refundRepo, noteRepo,
		auditSvc, deps.Logger.With("component", "refunds"))
	engineSvc := engine.NewService(dal, invoiceRepo, shiftRepo, settingsRepo, userRepo,
		auditSvc, guard, creds, cfg.CashGraceWindow,
		deps.Logger.With("component", "engine"))

	return &App{
		Services: Services{
			Credentials: creds,
			Sessions:    sessions,
			Audit:       auditSvc,
			Refunds:     refundSvc,
			Engine:      engineSvc,
		},
		DAL:      dal,
		Admin:    admin,
		Tenants:  tenantRepo,
		Users:    userRepo,
		Bookings: bookingRepo,
		Invoices: invoiceRepo,
		Shifts:   shiftRepo,
	}
}
