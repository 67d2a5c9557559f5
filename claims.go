package hostauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the read-only view of a validated access token.
type AuthClaims interface {
	UserID() int64
	Issuer() string
	Expires() time.Time
	IssuedAt() time.Time
	NotBefore() time.Time
}

// AccessClaims is the concrete claim set minted by the TokenService. The
// subject user id travels under data.user.id, which is the attribute layout
// the host's existing API clients already consume.
type AccessClaims struct {
	jwt.RegisteredClaims
	Data TokenData `json:"data"`
}

// TokenData wraps the user payload of an access token.
type TokenData struct {
	User TokenUser `json:"user"`
}

// TokenUser carries the subject user id.
type TokenUser struct {
	ID int64 `json:"id"`
}

// Verify interface compliance
var _ AuthClaims = (*AccessClaims)(nil)

// UserID returns the subject user id
func (c *AccessClaims) UserID() int64 {
	return c.Data.User.ID
}

// Issuer returns the iss claim
func (c *AccessClaims) Issuer() string {
	return c.RegisteredClaims.Issuer
}

// Expires returns the expiration time
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *AccessClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// NotBefore returns the not before time
func (c *AccessClaims) NotBefore() time.Time {
	if c.RegisteredClaims.NotBefore != nil {
		return c.RegisteredClaims.NotBefore.Time
	}
	return time.Time{}
}
