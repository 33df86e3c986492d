package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// SystemTenant labels audit entries written outside any tenant scope, such as
// provisioning-bootstrap statements.
const SystemTenant = "system"

// AuditWriter persists the audit record for an unscoped statement inside the
// same transaction as the statement. Implemented by repository.AuditRepo.
type AuditWriter interface {
	InsertRaw(ctx context.Context, tx *sql.Tx, entry *domain.AuditEntry) error
}

// AdminDB is the explicitly named unscoped bypass for cross-tenant
// administrative tooling. It is a distinct type from TenantDB, so using it is
// always a visible, reviewable choice at the call site, and every Exec is
// atomically paired with a critical-risk audit entry.
type AdminDB struct {
	write *sql.DB
	read  *sql.DB
	audit AuditWriter
}

// NewAdminDB creates the unscoped admin layer. The audit writer is wired
// after repository construction; Exec refuses to run without one.
func NewAdminDB(write, read *sql.DB) *AdminDB {
	return &AdminDB{write: write, read: read}
}

// SetAuditWriter installs the audit writer. Called once during wiring.
func (d *AdminDB) SetAuditWriter(w AuditWriter) { d.audit = w }

// actorForAudit resolves who to attribute an unscoped statement to.
func actorForAudit(ctx context.Context) (actorID, tenantID string) {
	if a, ok := domain.ActorFromContext(ctx); ok {
		return a.UserID, a.TenantID
	}
	return SystemTenant, SystemTenant
}

// Exec runs an unscoped statement and its critical-risk audit entry in one
// transaction: either both are persisted or neither is.
func (d *AdminDB) Exec(ctx context.Context, action, query string, args ...any) (sql.Result, error) {
	if d.audit == nil {
		return nil, fmt.Errorf("admin exec without audit writer")
	}

	actorID, tenantID := actorForAudit(ctx)

	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin admin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entry := &domain.AuditEntry{
		ID:        domain.NewID(),
		TenantID:  tenantID,
		ActorID:   actorID,
		Action:    action,
		RiskLevel: domain.RiskCritical,
		Reason:    "unscoped administrative statement",
		NewValues: map[string]any{"statement": query},
		CreatedAt: time.Now().UTC(),
	}
	if err := d.audit.InsertRaw(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("audit unscoped exec: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit admin tx: %w", err)
	}
	return res, nil
}

// auditUnscoped writes the critical-risk entry for an unscoped read. Reads
// cannot share a transaction with the audit insert, so the entry is committed
// first; a read that cannot be audited does not run.
func (d *AdminDB) auditUnscoped(ctx context.Context, action, reason, query string) error {
	if d.audit == nil {
		return fmt.Errorf("admin query without audit writer")
	}

	actorID, tenantID := actorForAudit(ctx)

	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin admin audit tx: %w", err)
	}
	entry := &domain.AuditEntry{
		ID:        domain.NewID(),
		TenantID:  tenantID,
		ActorID:   actorID,
		Action:    action,
		RiskLevel: domain.RiskCritical,
		Reason:    reason,
		NewValues: map[string]any{"statement": query},
		CreatedAt: time.Now().UTC(),
	}
	if err := d.audit.InsertRaw(ctx, tx, entry); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("audit unscoped query: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit admin audit tx: %w", err)
	}
	return nil
}

// Query runs an unscoped read on the read pool, audited first.
func (d *AdminDB) Query(ctx context.Context, action, query string, args ...any) (*sql.Rows, error) {
	if err := d.auditUnscoped(ctx, action, "unscoped administrative query", query); err != nil {
		return nil, err
	}
	return d.read.QueryContext(ctx, query, args...)
}

// QueryRow runs an unscoped single-row read on the read pool, audited first.
func (d *AdminDB) QueryRow(ctx context.Context, action, query string, args ...any) (*sql.Row, error) {
	if err := d.auditUnscoped(ctx, action, "unscoped administrative query", query); err != nil {
		return nil, err
	}
	return d.read.QueryRowContext(ctx, query, args...), nil
}
