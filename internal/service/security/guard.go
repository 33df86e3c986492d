package security

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// DefaultMinReasonLen is the minimum justification length for guarded actions.
const DefaultMinReasonLen = 20

// Guard checks the preconditions every risk-gated mutation shares: a
// justification of minimum length and a fresh credential re-confirmation
// against the acting user's stored hash. Both are verified before any side
// effect runs.
type Guard struct {
	dal          domain.DataAccess
	users        domain.UserRepository
	creds        *CredentialService
	minReasonLen int
}

// NewGuard creates a Guard. A non-positive minReasonLen falls back to
// DefaultMinReasonLen.
func NewGuard(dal domain.DataAccess, users domain.UserRepository, creds *CredentialService, minReasonLen int) *Guard {
	if minReasonLen <= 0 {
		minReasonLen = DefaultMinReasonLen
	}
	return &Guard{dal: dal, users: users, creds: creds, minReasonLen: minReasonLen}
}

// MinReasonLen returns the configured minimum justification length.
func (g *Guard) MinReasonLen() int { return g.minReasonLen }

// Check validates the guarded request for the context actor.
func (g *Guard) Check(ctx context.Context, req domain.GuardedRequest) error {
	if utf8.RuneCountInString(strings.TrimSpace(req.Reason)) < g.minReasonLen {
		return domain.ErrReasonTooShort(g.minReasonLen)
	}
	actor, ok := domain.ActorFromContext(ctx)
	if !ok || actor.UserID == "" {
		return domain.ErrTenantContextMissing()
	}
	u, err := g.users.Get(ctx, g.dal, actor.UserID)
	if err != nil {
		return domain.ErrPasswordConfirmationFailed()
	}
	if !g.creds.Verify(req.ConfirmPassword, u.CredentialHash) {
		return domain.ErrPasswordConfirmationFailed()
	}
	return nil
}
