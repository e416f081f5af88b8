package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Distinct verification failure kinds. Callers that need to collapse these
// into a single "unauthorized" outcome do so at their own boundary; inside
// the service the kinds stay separate for logging.
var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
)

// MinSecretLen is the minimum accepted HMAC secret length in bytes. Anything
// shorter than the SHA-256 block-output size weakens the MAC for no benefit.
const MinSecretLen = 32

// Signer is our interface for anything that can sign token claims.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a token string and gives you back the claims if it's
// legit.
type Verifier interface {
	Verify(token string) (Claims, error)
	VerifyAt(token string, now time.Time) (Claims, error)
}

// HS256 signs and verifies tokens with a single symmetric HMAC-SHA256 key.
// The key is fixed for the process lifetime and shared read-only across
// goroutines; there is no rotation protocol.
type HS256 struct {
	key    []byte
	issuer string
	leeway time.Duration
}

// HS256Option customizes an HS256 codec.
type HS256Option func(*HS256)

// WithLeeway allows a small grace period for clock skew when validating
// exp/nbf. The default is zero: a token is rejected the instant it expires.
func WithLeeway(d time.Duration) HS256Option {
	return func(h *HS256) { h.leeway = d }
}

// NewHS256 creates a codec from the given secret. The secret is copied so the
// caller cannot mutate it afterwards.
func NewHS256(secret []byte, issuer string, opts ...HS256Option) (*HS256, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("jwtx: secret must be at least %d bytes, got %d", MinSecretLen, len(secret))
	}

	h := &HS256{
		key:    append([]byte(nil), secret...),
		issuer: issuer,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Sign serializes and MACs the claims into a compact token string.
func (h *HS256) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(h.key)
}

// Verify validates the token against the current time.
func (h *HS256) Verify(token string) (Claims, error) {
	return h.VerifyAt(token, time.Now().UTC())
}

// VerifyAt validates the token at an explicit instant. Purely CPU-bound: no
// I/O, no store lookup. Signature is checked before time claims, so a token
// that is both valid-signature and expired reports ErrExpired, while a
// tampered token reports ErrInvalidSig regardless of its timestamps.
func (h *HS256) VerifyAt(token string, now time.Time) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(h.leeway),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return h.key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if h.issuer != "" && claims.Issuer != h.issuer {
		return Claims{}, ErrIssuer
	}

	return claims, nil
}

// mapParseError translates golang-jwt's wrapped errors into our sentinel
// kinds so callers never depend on the library's error surface.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
