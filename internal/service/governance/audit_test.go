package governance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db/repository"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/service/governance"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/testutil"
)

func newAudit(t *testing.T) (*governance.AuditService, *db.TenantDB, *domain.User, *domain.User) {
	t.Helper()
	dal, write, _ := testutil.NewDAL(t)
	testutil.InsertTenant(t, write, "t1", "Hotel One")
	owner := testutil.InsertUser(t, dal, "t1", "owner@t1", domain.RoleOwner, "pass-123456")
	reception := testutil.InsertUser(t, dal, "t1", "rec@t1", domain.RoleReception, "pass-123456")
	return governance.NewAuditService(dal, repository.NewAuditRepo()), dal, owner, reception
}

func TestWriteComputesDiffAndAttribution(t *testing.T) {
	svc, dal, owner, _ := newAudit(t)
	ctx := testutil.Ctx(owner)

	var entry *domain.AuditEntry
	err := dal.Tx(ctx, func(tx domain.Executor) error {
		var err error
		entry, err = svc.Write(ctx, tx, governance.Record{
			Action:            "VOID_INVOICE",
			RiskLevel:         domain.RiskHigh,
			Reason:            "duplicate invoice issued by mistake",
			OldValues:         map[string]any{"status": "ISSUED", "total": 10000},
			NewValues:         map[string]any{"status": "VOID", "total": 10000},
			PasswordConfirmed: true,
		})
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, owner.ID, entry.ActorID)
	assert.Equal(t, "t1", entry.TenantID)
	assert.Equal(t, "127.0.0.1", entry.IPAddress)
	assert.Equal(t, map[string][]any{"status": {"ISSUED", "VOID"}}, entry.Diff,
		"unchanged keys stay out of the diff")

	entries, total, err := svc.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].PasswordConfirmed)
}

func TestWriteRequiresActorContext(t *testing.T) {
	svc, dal, owner, _ := newAudit(t)

	err := dal.Tx(testutil.Ctx(owner), func(tx domain.Executor) error {
		_, werr := svc.Write(context.Background(), tx, governance.Record{
			Action: "X", RiskLevel: domain.RiskLow,
		})
		return werr
	})
	var denied *domain.AccessDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, domain.CodeTenantContextMissing, denied.Code)
}

func TestWriteRejectsUnknownRiskLevel(t *testing.T) {
	svc, dal, owner, _ := newAudit(t)
	ctx := testutil.Ctx(owner)

	err := dal.Tx(ctx, func(tx domain.Executor) error {
		_, werr := svc.Write(ctx, tx, governance.Record{
			Action: "X", RiskLevel: domain.RiskLevel("catastrophic"),
		})
		return werr
	})
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestListIsRestrictedToOwnersAndAccountants(t *testing.T) {
	svc, _, owner, reception := newAudit(t)

	_, _, err := svc.List(testutil.Ctx(reception), domain.AuditFilter{})
	var denied *domain.AccessDeniedError
	require.True(t, errors.As(err, &denied))

	_, _, err = svc.List(testutil.Ctx(owner), domain.AuditFilter{})
	require.NoError(t, err)
}
