package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// SettingsRepo implements domain.SettingsRepository.
type SettingsRepo struct{}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo() *SettingsRepo { return &SettingsRepo{} }

// Get returns the tenant's property settings. A tenant with no row yet gets
// zero-value settings rather than NotFound.
func (r *SettingsRepo) Get(ctx context.Context, e domain.Executor) (*domain.PropertySettings, error) {
	tenantID, err := domain.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row, err := e.QueryRow(ctx,
		`SELECT tenant_id, data_locked_until, maintenance_enabled, maintenance_message, updated_at
		 FROM property_settings WHERE tenant_id = :tenant_id`)
	if err != nil {
		return nil, err
	}
	var s domain.PropertySettings
	var lockedUntil sql.NullTime
	var enabled int64
	if err := row.Scan(&s.TenantID, &lockedUntil, &enabled, &s.MaintenanceMessage, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return &domain.PropertySettings{TenantID: tenantID}, nil
		}
		return nil, mapDBError(err)
	}
	s.DataLockedUntil = timePtr(lockedUntil)
	s.MaintenanceEnabled = enabled != 0
	return &s, nil
}

// Upsert writes the tenant's property settings.
func (r *SettingsRepo) Upsert(ctx context.Context, e domain.Executor, s *domain.PropertySettings) error {
	_, err := e.Exec(ctx,
		`INSERT INTO property_settings (tenant_id, data_locked_until, maintenance_enabled, maintenance_message, updated_at)
		 VALUES (:tenant_id, :data_locked_until, :maintenance_enabled, :maintenance_message, :updated_at)
		 ON CONFLICT (tenant_id) DO UPDATE SET
		     data_locked_until = excluded.data_locked_until,
		     maintenance_enabled = excluded.maintenance_enabled,
		     maintenance_message = excluded.maintenance_message,
		     updated_at = excluded.updated_at`,
		sql.Named("data_locked_until", nullTime(s.DataLockedUntil)),
		sql.Named("maintenance_enabled", boolToInt(s.MaintenanceEnabled)),
		sql.Named("maintenance_message", s.MaintenanceMessage),
		sql.Named("updated_at", time.Now().UTC()),
	)
	return mapDBError(err)
}

var _ domain.SettingsRepository = (*SettingsRepo)(nil)
