// internal/identity/resolver.go
package identity

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidToken covers malformed tokens, failed verification, and
	// tokens without a subject claim.
	ErrInvalidToken = errors.New("invalid token")
)

// Resolver turns a bearer token into a user identifier.
type Resolver interface {
	Resolve(token string) (string, error)
}

// ClaimsResolver extracts the subject claim WITHOUT verifying the token
// signature. This matches the behavior the API shipped with: the token
// issuer is external and the subject is trusted as-is. Use HMACResolver
// when verification is required.
type ClaimsResolver struct {
	parser *jwt.Parser
}

func NewClaimsResolver() *ClaimsResolver {
	return &ClaimsResolver{parser: jwt.NewParser()}
}

func (r *ClaimsResolver) Resolve(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := r.parser.ParseUnverified(token, claims); err != nil {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// HMACResolver verifies the token with an HS256 secret before returning the
// subject. Expiry and not-before are checked by the jwt library.
type HMACResolver struct {
	secret []byte
}

func NewHMACResolver(secret string) *HMACResolver {
	return &HMACResolver{secret: []byte(secret)}
}

func (r *HMACResolver) Resolve(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
