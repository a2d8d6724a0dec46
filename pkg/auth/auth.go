// Package auth turns bearer tokens into sessions.
//
// A Session is the capability checked before gated exports: callers pass
// session.Authenticated() as the export's Authenticated flag. Tokens are
// HS256-signed JWTs carrying the subject and email of the signed-in user.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultIssuer is the "iss" claim written and required by default.
const DefaultIssuer = "mockmaster"

var (
	// ErrNoSecret is returned when a Verifier has no signing secret.
	ErrNoSecret = errors.New("auth: no signing secret configured")

	// ErrInvalidToken is returned for tokens that fail verification.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrNoToken is returned when a request carries no bearer token.
	ErrNoToken = errors.New("auth: no bearer token")
)

// Session is a verified, signed-in user.
type Session struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticated reports whether s is a live session. A nil session is not
// authenticated.
func (s *Session) Authenticated() bool {
	if s == nil || s.Subject == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier issues and verifies session tokens.
type Verifier struct {
	// Secret is the HMAC key. Tokens cannot be issued or verified without it.
	Secret []byte
	// Issuer overrides DefaultIssuer.
	Issuer string
}

// NewVerifier creates a Verifier for secret with the default issuer.
func NewVerifier(secret string) *Verifier {
	return &Verifier{Secret: []byte(secret)}
}

func (v *Verifier) issuer() string {
	if v.Issuer != "" {
		return v.Issuer
	}
	return DefaultIssuer
}

// Issue mints a token for subject that expires after ttl.
func (v *Verifier) Issue(subject, email string, ttl time.Duration) (string, error) {
	if v == nil || len(v.Secret) == 0 {
		return "", ErrNoSecret
	}
	if subject == "" {
		return "", errors.New("auth: subject is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("auth: ttl must be positive, got %s", ttl)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(v.Secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature, issuer and expiry and returns its
// session.
func (v *Verifier) Verify(tokenString string) (*Session, error) {
	if v == nil || len(v.Secret) == 0 {
		return nil, ErrNoSecret
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		return v.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer()),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}

	session := &Session{Subject: c.Subject, Email: c.Email}
	if c.ExpiresAt != nil {
		session.ExpiresAt = c.ExpiresAt.Time
	}
	return session, nil
}

// VerifyHeader verifies the token in an Authorization header value of the
// form "Bearer <token>".
func (v *Verifier) VerifyHeader(header string) (*Session, error) {
	token, ok := BearerToken(header)
	if !ok {
		return nil, ErrNoToken
	}
	return v.Verify(token)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
