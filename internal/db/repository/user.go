package repository

import (
	"context"
	"database/sql"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// UserRepo implements domain.UserRepository.
type UserRepo struct{}

// NewUserRepo creates a new UserRepo.
func NewUserRepo() *UserRepo { return &UserRepo{} }

const userColumns = `id, tenant_id, email, display_name, role, credential_hash, pin_hash, active, token_version, created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var active, version int64
	if err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.DisplayName, (*string)(&u.Role),
		&u.CredentialHash, &u.PINHash, &active, &version, &u.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	u.Active = active != 0
	u.TokenVersion = version
	return &u, nil
}

// Create inserts a staff user into the tenant.
func (r *UserRepo) Create(ctx context.Context, e domain.Executor, u *domain.User) error {
	_, err := e.Exec(ctx,
		`INSERT INTO users (id, tenant_id, email, display_name, role, credential_hash, pin_hash, active, token_version)
		 VALUES (:id, :tenant_id, :email, :display_name, :role, :credential_hash, :pin_hash, :active, 0)`,
		sql.Named("id", u.ID),
		sql.Named("email", u.Email),
		sql.Named("display_name", u.DisplayName),
		sql.Named("role", string(u.Role)),
		sql.Named("credential_hash", u.CredentialHash),
		sql.Named("pin_hash", u.PINHash),
		sql.Named("active", boolToInt(u.Active)),
	)
	return mapDBError(err)
}

// Get returns a user by id within the tenant.
func (r *UserRepo) Get(ctx context.Context, e domain.Executor, id string) (*domain.User, error) {
	row, err := e.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

// GetByEmail returns a user by email within the tenant.
func (r *UserRepo) GetByEmail(ctx context.Context, e domain.Executor, email string) (*domain.User, error) {
	row, err := e.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = :email AND tenant_id = :tenant_id`,
		sql.Named("email", email))
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

// List returns a paginated list of the tenant's users.
func (r *UserRepo) List(ctx context.Context, e domain.Executor, page domain.PageRequest) ([]domain.User, int64, error) {
	row, err := e.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE tenant_id = :tenant_id`)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := e.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = :tenant_id ORDER BY created_at, id LIMIT :limit OFFSET :offset`,
		sql.Named("limit", int64(page.Limit())),
		sql.Named("offset", int64(page.Offset())))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// SetPINHash replaces a user's POS PIN hash.
func (r *UserRepo) SetPINHash(ctx context.Context, e domain.Executor, id, pinHash string) error {
	res, err := e.Exec(ctx,
		`UPDATE users SET pin_hash = :pin_hash WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("pin_hash", pinHash), sql.Named("id", id))
	if err != nil {
		return err
	}
	return requireRowAffected(res, "user", id)
}

// SetActive blocks or unblocks a user.
func (r *UserRepo) SetActive(ctx context.Context, e domain.Executor, id string, active bool) error {
	res, err := e.Exec(ctx,
		`UPDATE users SET active = :active WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("active", boolToInt(active)), sql.Named("id", id))
	if err != nil {
		return err
	}
	return requireRowAffected(res, "user", id)
}

// BumpTokenVersion invalidates all tokens issued to the user so far.
func (r *UserRepo) BumpTokenVersion(ctx context.Context, e domain.Executor, id string) error {
	res, err := e.Exec(ctx,
		`UPDATE users SET token_version = token_version + 1 WHERE id = :id AND tenant_id = :tenant_id`,
		sql.Named("id", id))
	if err != nil {
		return err
	}
	return requireRowAffected(res, "user", id)
}

var _ domain.UserRepository = (*UserRepo)(nil)
