package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// AuditRepo implements domain.AuditRepository. It exposes Insert and List
// only; audit rows are append-only and the schema's triggers reject any
// update or delete that would slip past this layer.
type AuditRepo struct{}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo() *AuditRepo { return &AuditRepo{} }

// Insert persists an audit entry through the tenant-enforced executor, so it
// joins whatever transaction the mutation it describes runs in.
func (r *AuditRepo) Insert(ctx context.Context, e domain.Executor, entry *domain.AuditEntry) error {
	oldJSON, err := jsonMap(entry.OldValues)
	if err != nil {
		return err
	}
	newJSON, err := jsonMap(entry.NewValues)
	if err != nil {
		return err
	}
	diffJSON, err := jsonDiff(entry.Diff)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx,
		`INSERT INTO audit_entries
		 (id, tenant_id, actor_id, action, risk_level, reason, old_values, new_values, diff, password_confirmed, ip_address)
		 VALUES (:id, :tenant_id, :actor_id, :action, :risk_level, :reason, :old_values, :new_values, :diff, :password_confirmed, :ip_address)`,
		sql.Named("id", entry.ID),
		sql.Named("actor_id", entry.ActorID),
		sql.Named("action", entry.Action),
		sql.Named("risk_level", string(entry.RiskLevel)),
		sql.Named("reason", entry.Reason),
		sql.Named("old_values", oldJSON),
		sql.Named("new_values", newJSON),
		sql.Named("diff", diffJSON),
		sql.Named("password_confirmed", boolToInt(entry.PasswordConfirmed)),
		sql.Named("ip_address", entry.IPAddress),
	)
	return mapDBError(err)
}

// InsertRaw persists an audit entry on a raw transaction, outside tenant
// enforcement. Only the unscoped admin layer uses it, to pair its own
// critical-risk entries with the statements they describe.
func (r *AuditRepo) InsertRaw(ctx context.Context, tx *sql.Tx, entry *domain.AuditEntry) error {
	oldJSON, err := jsonMap(entry.OldValues)
	if err != nil {
		return err
	}
	newJSON, err := jsonMap(entry.NewValues)
	if err != nil {
		return err
	}
	diffJSON, err := jsonDiff(entry.Diff)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_entries
		 (id, tenant_id, actor_id, action, risk_level, reason, old_values, new_values, diff, password_confirmed, ip_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TenantID, entry.ActorID, entry.Action, string(entry.RiskLevel), entry.Reason,
		oldJSON, newJSON, diffJSON, boolToInt(entry.PasswordConfirmed), entry.IPAddress,
	)
	return mapDBError(err)
}

// List returns a filtered, paginated slice of the tenant's audit entries,
// newest first.
func (r *AuditRepo) List(ctx context.Context, e domain.Executor, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	where := ` WHERE tenant_id = :tenant_id`
	args := []sql.NamedArg{}

	if filter.ActorID != nil {
		where += ` AND actor_id = :actor_id`
		args = append(args, sql.Named("actor_id", *filter.ActorID))
	}
	if filter.RiskLevel != nil {
		where += ` AND risk_level = :risk_level`
		args = append(args, sql.Named("risk_level", string(*filter.RiskLevel)))
	}
	if filter.Action != nil {
		where += ` AND action = :action`
		args = append(args, sql.Named("action", *filter.Action))
	}
	if filter.From != nil {
		where += ` AND created_at >= :from_time`
		args = append(args, sql.Named("from_time", *filter.From))
	}
	if filter.To != nil {
		where += ` AND created_at < :to_time`
		args = append(args, sql.Named("to_time", *filter.To))
	}

	row, err := e.QueryRow(ctx, `SELECT COUNT(*) FROM audit_entries`+where, args...)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	listArgs := append(args,
		sql.Named("limit", int64(filter.Page.Limit())),
		sql.Named("offset", int64(filter.Page.Offset())))
	rows, err := e.Query(ctx,
		`SELECT id, tenant_id, actor_id, action, risk_level, reason, old_values, new_values, diff, password_confirmed, ip_address, created_at
		 FROM audit_entries`+where+` ORDER BY created_at DESC, id DESC LIMIT :limit OFFSET :offset`,
		listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var oldJSON, newJSON, diffJSON string
		var confirmed int64
		if err := rows.Scan(&entry.ID, &entry.TenantID, &entry.ActorID, &entry.Action,
			(*string)(&entry.RiskLevel), &entry.Reason, &oldJSON, &newJSON, &diffJSON,
			&confirmed, &entry.IPAddress, &entry.CreatedAt); err != nil {
			return nil, 0, err
		}
		entry.PasswordConfirmed = confirmed != 0
		if err := json.Unmarshal([]byte(oldJSON), &entry.OldValues); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(newJSON), &entry.NewValues); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(diffJSON), &entry.Diff); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

var _ domain.AuditRepository = (*AuditRepo)(nil)
