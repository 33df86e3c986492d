package domain

import "context"

type actorKey struct{}
type provisioningKey struct{}

// Actor carries the authenticated identity through request context. It is set
// exactly once by the auth middleware, immediately after the session token is
// validated, and discarded with the request context.
type Actor struct {
	UserID   string
	TenantID string
	Role     Role
	IP       string
}

// WithActor stores the authenticated actor in the context.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext extracts the authenticated actor from the context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

// TenantFromContext returns the tenant bound to the context, or a
// TENANT_CONTEXT_MISSING error when the context carries no actor. All
// tenant-enforced data access goes through this lookup.
func TenantFromContext(ctx context.Context) (string, error) {
	a, ok := ActorFromContext(ctx)
	if !ok || a.TenantID == "" {
		return "", ErrTenantContextMissing()
	}
	return a.TenantID, nil
}

// WithProvisioning marks a context as belonging to the tenant-provisioning
// bootstrap path. Provisioning runs before any tenant exists and therefore
// works exclusively through the unscoped admin layer; the scoped layer keeps
// rejecting such contexts.
func WithProvisioning(ctx context.Context) context.Context {
	return context.WithValue(ctx, provisioningKey{}, true)
}

// IsProvisioning reports whether the context is the provisioning bootstrap.
func IsProvisioning(ctx context.Context) bool {
	v, _ := ctx.Value(provisioningKey{}).(bool)
	return v
}
