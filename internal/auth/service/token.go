package service

import (
	"time"

	"github.com/carefinder/carefinder/internal/auth/domain"
	"github.com/carefinder/carefinder/pkg/jwtx"
)

// TokenService issues and validates the service's access tokens. Both
// directions are pure CPU work over the shared signing secret: issuing
// embeds a snapshot of the user's roles, validation checks signature and
// time claims only and never consults the store. A revoked role therefore
// stays effective until the token expires or the user logs in again.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier

	Issuer    string
	AccessTTL time.Duration
}

// Issue signs an access token for the user carrying the given role snapshot.
func (s *TokenService) Issue(u domain.User, roles []string, now time.Time) (domain.AccessToken, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(u.ID, roles, u.Email, ttl, s.Issuer, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.AccessToken{}, err
	}

	return domain.AccessToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: ttl,
	}, nil
}

// Validate reconstructs the principal from a token string. Failures keep
// their distinct jwtx kind (ErrMalformed, ErrInvalidSig, ErrExpired, ...);
// collapsing them into a single unauthorized outcome is the orchestrator's
// job, not ours.
func (s *TokenService) Validate(token string, now time.Time) (domain.Principal, error) {
	claims, err := s.Verifier.VerifyAt(token, now)
	if err != nil {
		return domain.Principal{}, err
	}

	return domain.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Roles:  claims.Roles,
	}, nil
}
