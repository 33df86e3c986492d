package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// rawAuditWriter is a minimal AuditWriter for tests; the production
// implementation lives in the repository package.
type rawAuditWriter struct{}

func (rawAuditWriter) InsertRaw(ctx context.Context, tx *sql.Tx, e *domain.AuditEntry) error {
	newValues, err := json.Marshal(e.NewValues)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_entries (id, tenant_id, actor_id, action, risk_level, reason, new_values, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TenantID, e.ActorID, e.Action, string(e.RiskLevel), e.Reason, string(newValues), e.CreatedAt)
	return err
}

func TestAdminDBExecWritesCriticalAudit(t *testing.T) {
	write, read := OpenTestSQLite(t)
	admin := NewAdminDB(write, read)
	admin.SetAuditWriter(rawAuditWriter{})

	_, err := admin.Exec(context.Background(), "PROVISION_TENANT",
		`INSERT INTO tenants (id, name, billing_status) VALUES (?, ?, ?)`,
		"t1", "Hotel One", "active")
	require.NoError(t, err)

	var risk, action, tenant string
	err = write.QueryRow(
		`SELECT risk_level, action, tenant_id FROM audit_entries`).Scan(&risk, &action, &tenant)
	require.NoError(t, err)
	assert.Equal(t, "critical", risk)
	assert.Equal(t, "PROVISION_TENANT", action)
	assert.Equal(t, SystemTenant, tenant)
}

func TestAdminDBExecIsAtomicWithAudit(t *testing.T) {
	write, read := OpenTestSQLite(t)
	admin := NewAdminDB(write, read)
	admin.SetAuditWriter(rawAuditWriter{})

	// Statement fails (unknown table): neither the statement nor the audit
	// entry may survive.
	_, err := admin.Exec(context.Background(), "BROKEN", `INSERT INTO nope (id) VALUES (1)`)
	require.Error(t, err)

	var n int
	require.NoError(t, write.QueryRow(`SELECT COUNT(*) FROM audit_entries`).Scan(&n))
	assert.Zero(t, n, "audit entry for a failed statement must be rolled back")
}

func TestAdminDBRefusesWithoutAuditWriter(t *testing.T) {
	write, read := OpenTestSQLite(t)
	admin := NewAdminDB(write, read)

	_, err := admin.Exec(context.Background(), "X", `SELECT 1`)
	require.Error(t, err)

	_, err = admin.Query(context.Background(), "X", `SELECT 1`)
	require.Error(t, err)
}

func TestAdminDBAttributesActor(t *testing.T) {
	write, read := OpenTestSQLite(t)
	admin := NewAdminDB(write, read)
	admin.SetAuditWriter(rawAuditWriter{})

	ctx := domain.WithActor(context.Background(), domain.Actor{UserID: "u-9", TenantID: "t-9"})
	_, err := admin.Exec(ctx, "READ_TENANT",
		`INSERT INTO tenants (id, name) VALUES (?, ?)`, "t-9", "Hotel Nine")
	require.NoError(t, err)

	var actor string
	require.NoError(t, write.QueryRow(`SELECT actor_id FROM audit_entries`).Scan(&actor))
	assert.Equal(t, "u-9", actor)
}
