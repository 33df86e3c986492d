package domain

import (
	"context"
	"database/sql"
)

// Executor runs tenant-enforced statements. Implemented by db.TenantDB (pool)
// and db.TenantTx (transaction), so repository methods compose into
// transactions unchanged.
//
// The contract, enforced by the implementations: every statement uses named
// parameters and references :tenant_id; the executor binds :tenant_id from
// the context itself and fails with TENANT_CONTEXT_MISSING when the context
// carries no tenant. Callers never pass the tenant id.
type Executor interface {
	Query(ctx context.Context, query string, args ...sql.NamedArg) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...sql.NamedArg) (*sql.Row, error)
	Exec(ctx context.Context, query string, args ...sql.NamedArg) (sql.Result, error)
}

// TxRunner begins a tenant-enforced transaction, runs fn with a transactional
// Executor, commits on normal return, and rolls back on error or panic.
type TxRunner interface {
	Tx(ctx context.Context, fn func(Executor) error) error
}

// DataAccess is the full tenant-enforced data access layer.
type DataAccess interface {
	Executor
	TxRunner
}
