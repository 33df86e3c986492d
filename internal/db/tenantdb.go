package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// TenantDB is the tenant-enforced data access layer. Every statement must use
// named parameters and reference :tenant_id; TenantDB binds :tenant_id from
// the request context itself. A call with no tenant in context fails with
// TENANT_CONTEXT_MISSING before touching the database, and a statement that
// does not reference :tenant_id is rejected outright, so forgetting isolation
// is not an expressible mistake at this layer.
//
// Reads run on the read pool, writes and transactions on the single-writer
// pool. The unscoped bypass lives in AdminDB, a distinct type, so crossing
// tenant boundaries always requires an explicit, reviewable choice.
type TenantDB struct {
	write *sql.DB
	read  *sql.DB
}

// NewTenantDB creates the tenant-enforced layer over a write/read pool pair.
func NewTenantDB(write, read *sql.DB) *TenantDB {
	return &TenantDB{write: write, read: read}
}

// bindTenant validates the statement and appends the context tenant binding.
func bindTenant(ctx context.Context, query string, args []sql.NamedArg) ([]any, error) {
	tenantID, err := domain.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(query, ":tenant_id") {
		return nil, fmt.Errorf("tenant-enforced statement does not reference :tenant_id")
	}
	out := make([]any, 0, len(args)+1)
	for _, a := range args {
		if a.Name == "tenant_id" {
			// Naming another tenant is an access violation, not a typo.
			if v, ok := a.Value.(string); ok && v != tenantID {
				return nil, domain.ErrCrossTenantAccessDenied()
			}
			return nil, fmt.Errorf("tenant_id is bound by the data access layer, not the caller")
		}
		out = append(out, a)
	}
	out = append(out, sql.Named("tenant_id", tenantID))
	return out, nil
}

// Query runs a tenant-enforced read on the read pool.
func (d *TenantDB) Query(ctx context.Context, query string, args ...sql.NamedArg) (*sql.Rows, error) {
	bound, err := bindTenant(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return d.read.QueryContext(ctx, query, bound...)
}

// QueryRow runs a tenant-enforced single-row read on the read pool.
func (d *TenantDB) QueryRow(ctx context.Context, query string, args ...sql.NamedArg) (*sql.Row, error) {
	bound, err := bindTenant(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return d.read.QueryRowContext(ctx, query, bound...), nil
}

// Exec runs a tenant-enforced write on the write pool.
func (d *TenantDB) Exec(ctx context.Context, query string, args ...sql.NamedArg) (sql.Result, error) {
	bound, err := bindTenant(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return d.write.ExecContext(ctx, query, bound...)
}

// Tx begins a transaction on the write pool, runs fn with a transactional
// Executor, commits on normal return, and rolls back on error or panic. The
// underlying connection is released on every exit path.
func (d *TenantDB) Tx(ctx context.Context, fn func(domain.Executor) error) (err error) {
	// Fail before BeginTx so a missing tenant never consumes the writer.
	if _, terr := domain.TenantFromContext(ctx); terr != nil {
		return terr
	}

	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		_ = tx.Rollback()
	}()

	if err = fn(&TenantTx{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	done = true
	return nil
}

// TenantTx is the transactional form of TenantDB with the identical
// tenant-enforced statement contract.
type TenantTx struct {
	tx *sql.Tx
}

// Query runs a tenant-enforced read inside the transaction.
func (t *TenantTx) Query(ctx context.Context, query string, args ...sql.NamedArg) (*sql.Rows, error) {
	bound, err := bindTenant(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return t.tx.QueryContext(ctx, query, bound...)
}

// QueryRow runs a tenant-enforced single-row read inside the transaction.
func (t *TenantTx) QueryRow(ctx context.Context, query string, args ...sql.NamedArg) (*sql.Row, error) {
	bound, err := bindTenant(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return t.tx.QueryRowContext(ctx, query, bound...), nil
}

// Exec runs a tenant-enforced write inside the transaction.
func (t *TenantTx) Exec(ctx context.Context, query string, args ...sql.NamedArg) (sql.Result, error) {
	bound, err := bindTenant(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return t.tx.ExecContext(ctx, query, bound...)
}

var (
	_ domain.Executor = (*TenantDB)(nil)
	_ domain.Executor = (*TenantTx)(nil)
	_ domain.TxRunner = (*TenantDB)(nil)
)
