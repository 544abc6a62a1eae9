package common

import (
	"errors"
	"fmt"
	"time"

	"aeroportal/flightops/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignedToken is a verified bearer token.
type SignedToken struct {
	Subject   string
	Role      constants.Role
	TokenID   string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenSigner issues and verifies HS256 bearer tokens.
type TokenSigner struct {
	secretKey []byte
	issuer    string
}

func NewTokenSigner(secretKey []byte) *TokenSigner {
	return &TokenSigner{secretKey: secretKey, issuer: "flightops"}
}

// Issue signs a token for subject with the given role.
func (s *TokenSigner) Issue(subject string, role constants.Role, ttl time.Duration) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}
	now := time.Now()

	claims := tokenClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, including expiry and role.
func (s *TokenSigner) Validate(tokenString string) (*SignedToken, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	role := constants.Role(claims.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role claim %q", claims.Role)
	}
	if claims.Subject == "" {
		return nil, errors.New("missing sub claim")
	}

	return &SignedToken{
		Subject:   claims.Subject,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
