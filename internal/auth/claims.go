package auth

import "aeroportal/flightops/internal/constants"

// UserClaims describes the caller of a request.
type UserClaims interface {
	UserID() string
	Role() constants.Role
	Source() string
	HasRole(required constants.Role) bool
}

// JWTClaims come from a verified bearer token.
type JWTClaims struct {
	Subject   string
	RoleValue constants.Role
	TokenID   string
}

func (c *JWTClaims) UserID() string                       { return c.Subject }
func (c *JWTClaims) Role() constants.Role                 { return c.RoleValue }
func (c *JWTClaims) Source() string                       { return "JWT" }
func (c *JWTClaims) HasRole(required constants.Role) bool { return c.RoleValue.Covers(required) }

// LocalClaims stand in for every caller when token auth is switched off.
type LocalClaims struct{}

func (LocalClaims) UserID() string              { return "local" }
func (LocalClaims) Role() constants.Role        { return constants.RoleAdmin }
func (LocalClaims) Source() string              { return "LOCAL" }
func (LocalClaims) HasRole(constants.Role) bool { return true }
