package domain

import "time"

// Tenant is one hotel property, the unit of data isolation. Every
// tenant-scoped row carries its id.
type Tenant struct {
	ID            string
	Name          string
	BillingStatus string // "active", "past_due", "suspended"
	CreatedAt     time.Time
}

// Role is a user's role within a tenant.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleManager      Role = "manager"
	RoleReception    Role = "reception"
	RoleAccountant   Role = "accountant"
	RoleHousekeeping Role = "housekeeping"
	RoleStaff        Role = "staff"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleManager, RoleReception, RoleAccountant, RoleHousekeeping, RoleStaff:
		return true
	}
	return false
}

// User is a staff member of a tenant.
type User struct {
	ID             string
	TenantID       string
	Email          string
	DisplayName    string
	Role           Role
	CredentialHash string // bcrypt hash of the login password
	PINHash        string // bcrypt hash of the POS PIN, empty when unset
	Active         bool
	TokenVersion   int64 // bumped on forced logout; invalidates issued tokens
	CreatedAt      time.Time
}

// CreateTenantRequest holds parameters for provisioning a new tenant.
type CreateTenantRequest struct {
	Name          string
	BillingStatus string
}

// Validate checks that the request is well-formed.
func (r *CreateTenantRequest) Validate() error {
	if r.Name == "" {
		return ErrValidation("tenant name is required")
	}
	if r.BillingStatus == "" {
		r.BillingStatus = "active"
	}
	return nil
}

// CreateUserRequest holds parameters for creating a staff user.
type CreateUserRequest struct {
	Email       string
	DisplayName string
	Role        Role
	Password    string
}

// Validate checks that the request is well-formed.
func (r *CreateUserRequest) Validate() error {
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	if !ValidRole(r.Role) {
		return ErrValidation("unknown role %q", r.Role)
	}
	if len(r.Password) < 8 {
		return ErrValidation("password must be at least 8 characters")
	}
	return nil
}
