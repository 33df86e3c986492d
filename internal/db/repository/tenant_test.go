package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

func newTenantRepo(t *testing.T) *TenantRepo {
	t.Helper()
	write, read := db.OpenTestSQLite(t)
	admin := db.NewAdminDB(write, read)
	admin.SetAuditWriter(NewAuditRepo())
	return NewTenantRepo(admin)
}

func TestTenantCreateRequiresProvisioningContext(t *testing.T) {
	repo := newTenantRepo(t)
	tenant := &domain.Tenant{ID: domain.NewID(), Name: "Hotel One", BillingStatus: "active"}

	// A plain request context, even an owner's, cannot provision.
	ctx := domain.WithActor(context.Background(), domain.Actor{
		UserID: "u-owner", TenantID: "t-other", Role: domain.RoleOwner,
	})
	err := repo.Create(ctx, tenant)
	var denied *domain.AccessDeniedError
	require.True(t, errors.As(err, &denied))

	require.NoError(t, repo.Create(domain.WithProvisioning(ctx), tenant))

	got, err := repo.Get(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hotel One", got.Name)
}
