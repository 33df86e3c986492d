package security

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

// SessionService authenticates staff and issues tenant-bound JWTs. A token is
// valid only while the user stays active and their token version is
// unchanged; forced logout bumps the version and strands every issued token.
type SessionService struct {
	dal    domain.DataAccess
	users  domain.UserRepository
	creds  *CredentialService
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

// SessionClaims is the JWT payload for a staff session.
type SessionClaims struct {
	TenantID     string `json:"tid"`
	Role         string `json:"role"`
	TokenVersion int64  `json:"ver"`
	jwt.RegisteredClaims
}

// NewSessionService creates a SessionService.
func NewSessionService(dal domain.DataAccess, users domain.UserRepository, creds *CredentialService, secret []byte, ttl time.Duration, logger *slog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{dal: dal, users: users, creds: creds, secret: secret, ttl: ttl, logger: logger}
}

// Login verifies a staff credential within the claimed tenant and returns a
// signed session token. The tenant comes from the request (subdomain or
// explicit field), which is what scopes the user lookup.
func (s *SessionService) Login(ctx context.Context, tenantID, email, password string) (string, *domain.User, error) {
	if tenantID == "" || email == "" || password == "" {
		return "", nil, domain.ErrValidation("tenant, email, and password are required")
	}

	// Bind the claimed tenant so the lookup runs tenant-enforced. The actor
	// stays anonymous until the credential verifies.
	scoped := domain.WithActor(ctx, domain.Actor{TenantID: tenantID})

	u, err := s.users.GetByEmail(scoped, s.dal, email)
	if err != nil || !u.Active || !s.creds.Verify(password, u.CredentialHash) {
		// One failure shape regardless of cause; no account probing.
		s.logger.Info("login rejected", "tenant", tenantID, "email", email)
		return "", nil, domain.ErrAccessDenied("invalid credentials")
	}

	return s.issue(u)
}

// LoginExternal issues a session for an identity already verified by an
// external provider, linked to a staff account by email. No password check:
// the provider vouched for the identity; the account must still exist and be
// active within the claimed tenant.
func (s *SessionService) LoginExternal(ctx context.Context, tenantID, email string) (string, *domain.User, error) {
	if tenantID == "" || email == "" {
		return "", nil, domain.ErrValidation("tenant and email are required")
	}
	scoped := domain.WithActor(ctx, domain.Actor{TenantID: tenantID})
	u, err := s.users.GetByEmail(scoped, s.dal, email)
	if err != nil || !u.Active {
		s.logger.Info("sso login rejected", "tenant", tenantID, "email", email)
		return "", nil, domain.ErrAccessDenied("invalid credentials")
	}
	return s.issue(u)
}

func (s *SessionService) issue(u *domain.User) (string, *domain.User, error) {
	now := time.Now()
	claims := SessionClaims{
		TenantID:     u.TenantID,
		Role:         string(u.Role),
		TokenVersion: u.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, u, nil
}

// Resolve validates a session token and returns the authenticated actor. It
// re-reads the user so a block or forced logout takes effect immediately.
func (s *SessionService) Resolve(ctx context.Context, tokenString string) (domain.Actor, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid || claims.Subject == "" || claims.TenantID == "" {
		return domain.Actor{}, domain.ErrAccessDenied("invalid session token")
	}

	scoped := domain.WithActor(ctx, domain.Actor{TenantID: claims.TenantID})
	u, err := s.users.Get(scoped, s.dal, claims.Subject)
	if err != nil {
		return domain.Actor{}, domain.ErrAccessDenied("invalid session token")
	}
	if !u.Active {
		return domain.Actor{}, domain.ErrAccessDenied("account is blocked")
	}
	if u.TokenVersion != claims.TokenVersion {
		return domain.Actor{}, domain.ErrAccessDenied("session has been revoked")
	}

	return domain.Actor{UserID: u.ID, TenantID: u.TenantID, Role: u.Role}, nil
}
