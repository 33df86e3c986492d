// Package engine implements the risk-gated mutation engine: destructive or
// sensitive changes that require a justification, credential re-confirmation,
// and an audit entry committed atomically with the mutation.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/governance"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/security"
)

// DefaultGraceWindow is how long after verification a shift can still be
// adjusted without an explicit override.
const DefaultGraceWindow = 24 * time.Hour

// Service executes guarded mutations. Every operation runs the same way:
// guard preconditions first, then snapshot, mutation, and audit entry inside
// one transaction.
type Service struct {
	dal         domain.DataAccess
	invoices    domain.InvoiceRepository
	shifts      domain.ShiftRepository
	settings    domain.SettingsRepository
	users       domain.UserRepository
	audit       *governance.AuditService
	guard       *security.Guard
	creds       *security.CredentialService
	graceWindow time.Duration
	logger      *slog.Logger
}

// NewService creates the mutation engine. A non-positive graceWindow falls
// back to DefaultGraceWindow.
func NewService(dal domain.DataAccess, invoices domain.InvoiceRepository, shifts domain.ShiftRepository, settings domain.SettingsRepository, users domain.UserRepository, audit *governance.AuditService, guard *security.Guard, creds *security.CredentialService, graceWindow time.Duration, logger *slog.Logger) *Service {
	if graceWindow <= 0 {
		graceWindow = DefaultGraceWindow
	}
	return &Service{
		dal:         dal,
		invoices:    invoices,
		shifts:      shifts,
		settings:    settings,
		users:       users,
		audit:       audit,
		guard:       guard,
		creds:       creds,
		graceWindow: graceWindow,
		logger:      logger,
	}
}

// mutation is what an operation hands back to run for auditing.
type mutation struct {
	action string
	risk   domain.RiskLevel
	old    map[string]any
	new    map[string]any
}

// run is the shared wrapper: guard checks happen before any side effect, then
// the operation and its audit entry commit in one transaction or not at all.
func (s *Service) run(ctx context.Context, g domain.GuardedRequest, fn func(tx domain.Executor) (*mutation, error)) error {
	if err := s.guard.Check(ctx, g); err != nil {
		return err
	}
	return s.dal.Tx(ctx, func(tx domain.Executor) error {
		m, err := fn(tx)
		if err != nil {
			return err
		}
		_, err = s.audit.Write(ctx, tx, governance.Record{
			Action:            m.action,
			RiskLevel:         m.risk,
			Reason:            g.Reason,
			OldValues:         m.old,
			NewValues:         m.new,
			PasswordConfirmed: true,
		})
		return err
	})
}

// requireRole checks the context actor against an allow-list of roles.
func requireRole(ctx context.Context, roles ...domain.Role) error {
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return domain.ErrTenantContextMissing()
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return domain.ErrAccessDenied("role %s may not perform this action", actor.Role)
}
