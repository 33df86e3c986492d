package middleware

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// IdentityClaims holds the identity extracted from a verified external token.
type IdentityClaims struct {
	Subject string
	Issuer  string
	Email   string
}

// OIDCVerifier verifies ID tokens issued by an external identity provider.
// Used by the SSO login path to map a provider identity to a staff account by
// email; it never mints sessions on its own.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier creates a verifier from an OIDC issuer URL via discovery.
func NewOIDCVerifier(ctx context.Context, issuerURL, audience string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc provider discovery: %w", err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: audience}),
	}, nil
}

// Verify validates the token and extracts the identity claims. A token
// without an email claim is rejected since email is the account link key.
func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*IdentityClaims, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	var raw struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&raw); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	if raw.Email == "" {
		return nil, fmt.Errorf("token has no email claim")
	}
	return &IdentityClaims{Subject: idToken.Subject, Issuer: idToken.Issuer, Email: raw.Email}, nil
}
