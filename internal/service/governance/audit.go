// Package governance implements the audit log service.
package governance

import (
	"context"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// AuditService records and queries audit entries. Recording computes the
// structured diff; querying is the forensic review side.
type AuditService struct {
	dal  domain.DataAccess
	repo domain.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(dal domain.DataAccess, repo domain.AuditRepository) *AuditService {
	return &AuditService{dal: dal, repo: repo}
}

// Record describes one audited action.
type Record struct {
	Action            string
	RiskLevel         domain.RiskLevel
	Reason            string
	OldValues         map[string]any
	NewValues         map[string]any
	PasswordConfirmed bool
}

// Write builds and inserts the audit entry on the given executor, so callers
// running inside a transaction get the entry committed atomically with their
// mutation. The diff is computed here, changed keys only.
func (s *AuditService) Write(ctx context.Context, e domain.Executor, rec Record) (*domain.AuditEntry, error) {
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrTenantContextMissing()
	}
	if !domain.ValidRiskLevel(rec.RiskLevel) {
		return nil, domain.ErrValidation("unknown risk level %q", rec.RiskLevel)
	}

	entry := &domain.AuditEntry{
		ID:                domain.NewID(),
		TenantID:          actor.TenantID,
		ActorID:           actor.UserID,
		Action:            rec.Action,
		RiskLevel:         rec.RiskLevel,
		Reason:            rec.Reason,
		OldValues:         rec.OldValues,
		NewValues:         rec.NewValues,
		Diff:              domain.Diff(rec.OldValues, rec.NewValues),
		PasswordConfirmed: rec.PasswordConfirmed,
		IPAddress:         actor.IP,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, e, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns a filtered, paginated view of the tenant's audit trail.
// Restricted to owners and accountants.
func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if err := requireRole(ctx, domain.RoleOwner, domain.RoleAccountant); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, s.dal, filter)
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
