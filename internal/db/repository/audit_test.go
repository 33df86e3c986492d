package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// Repository tests use local fixtures: internal/testutil builds on this
// package, so it cannot be imported back here.
func newAuditDB(t *testing.T) (*db.TenantDB, *sql.DB, context.Context) {
	t.Helper()
	write, read := db.OpenTestSQLite(t)
	_, err := write.Exec(`INSERT INTO tenants (id, name, billing_status) VALUES ('t1', 'Hotel One', 'active')`)
	require.NoError(t, err)
	ctx := domain.WithActor(context.Background(), domain.Actor{
		UserID: "u-owner", TenantID: "t1", Role: domain.RoleOwner,
	})
	return db.NewTenantDB(write, read), write, ctx
}

func TestAuditRepoInsertAndList(t *testing.T) {
	dal, _, ctx := newAuditDB(t)

	repo := NewAuditRepo()
	entry := &domain.AuditEntry{
		ID:        domain.NewID(),
		TenantID:  "t1",
		ActorID:   "u-owner",
		Action:    "VOID_INVOICE",
		RiskLevel: domain.RiskHigh,
		Reason:    "duplicate invoice issued by mistake",
		OldValues: map[string]any{"status": "ISSUED"},
		NewValues: map[string]any{"status": "VOID"},
		Diff:      map[string][]any{"status": {"ISSUED", "VOID"}},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(ctx, dal, entry))

	entries, total, err := repo.List(ctx, dal, domain.AuditFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, entries, 1)
	got := entries[0]
	assert.Equal(t, "VOID_INVOICE", got.Action)
	assert.Equal(t, domain.RiskHigh, got.RiskLevel)
	assert.Equal(t, map[string][]any{"status": {"ISSUED", "VOID"}}, got.Diff)
}

func TestAuditRepoListFilters(t *testing.T) {
	dal, _, ctx := newAuditDB(t)

	repo := NewAuditRepo()
	otherActor := "u-manager"
	for i, e := range []struct {
		actor string
		risk  domain.RiskLevel
	}{
		{"u-owner", domain.RiskLow},
		{"u-owner", domain.RiskHigh},
		{otherActor, domain.RiskHigh},
	} {
		require.NoError(t, repo.Insert(ctx, dal, &domain.AuditEntry{
			ID:        domain.NewID(),
			TenantID:  "t1",
			ActorID:   e.actor,
			Action:    "ADJUST_CASH",
			RiskLevel: e.risk,
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}))
	}

	high := domain.RiskHigh
	entries, total, err := repo.List(ctx, dal, domain.AuditFilter{RiskLevel: &high})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, entries, 2)

	entries, total, err = repo.List(ctx, dal, domain.AuditFilter{ActorID: &otherActor, RiskLevel: &high})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, otherActor, entries[0].ActorID)
}

func TestAuditEntriesAreAppendOnly(t *testing.T) {
	dal, write, ctx := newAuditDB(t)

	repo := NewAuditRepo()
	entry := &domain.AuditEntry{
		ID:        domain.NewID(),
		TenantID:  "t1",
		ActorID:   "u-owner",
		Action:    "FORCE_LOGOUT",
		RiskLevel: domain.RiskMedium,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(ctx, dal, entry))

	// The schema's triggers reject mutation even from raw SQL.
	_, err := write.Exec(`UPDATE audit_entries SET action = 'TAMPERED' WHERE id = ?`, entry.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append-only")

	_, err = write.Exec(`DELETE FROM audit_entries WHERE id = ?`, entry.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append-only")
}
