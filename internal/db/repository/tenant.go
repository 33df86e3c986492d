package repository

import (
	"context"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// TenantRepo implements domain.TenantRepository over the unscoped admin
// layer. The tenants table is the isolation root, not itself tenant-scoped;
// every access through here is audited at critical risk by AdminDB.
type TenantRepo struct {
	admin *db.AdminDB
}

// NewTenantRepo creates a new TenantRepo.
func NewTenantRepo(admin *db.AdminDB) *TenantRepo {
	return &TenantRepo{admin: admin}
}

// Create provisions a tenant. Only the provisioning bootstrap context may
// call it; a request context, even an owner's, is refused.
func (r *TenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	if !domain.IsProvisioning(ctx) {
		return domain.ErrAccessDenied("tenant provisioning requires the bootstrap context")
	}
	_, err := r.admin.Exec(ctx, "PROVISION_TENANT",
		`INSERT INTO tenants (id, name, billing_status) VALUES (?, ?, ?)`,
		t.ID, t.Name, t.BillingStatus)
	return mapDBError(err)
}

// Get returns a tenant by id.
func (r *TenantRepo) Get(ctx context.Context, id string) (*domain.Tenant, error) {
	row, err := r.admin.QueryRow(ctx, "READ_TENANT",
		`SELECT id, name, billing_status, created_at FROM tenants WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	var t domain.Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.BillingStatus, &t.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &t, nil
}

// List returns a paginated list of all tenants.
func (r *TenantRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Tenant, int64, error) {
	row, err := r.admin.QueryRow(ctx, "LIST_TENANTS", `SELECT COUNT(*) FROM tenants`)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.admin.Query(ctx, "LIST_TENANTS",
		`SELECT id, name, billing_status, created_at FROM tenants ORDER BY created_at, id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.BillingStatus, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, t)
	}
	return tenants, total, rows.Err()
}

var _ domain.TenantRepository = (*TenantRepo)(nil)
