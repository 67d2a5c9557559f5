package hostauth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// DefaultTokenTTL is the access token lifetime used when Config.TokenTTL is
// zero. TTL is deliberately configuration, not a constant.
const DefaultTokenTTL = 24 * time.Hour

// DefaultAPIPrefix is the mount prefix the request authenticator matches
// against when none is configured.
const DefaultAPIPrefix = "api/v1"

// DefaultCORSAllowedHeaders is the allow-headers list emitted when CORS
// support is enabled and no custom list is configured.
const DefaultCORSAllowedHeaders = "Access-Control-Allow-Headers, Content-Type, Authorization"

// Config holds the immutable settings the auth components are constructed
// with. There is no ambient global state: every component receives its
// Config explicitly. A missing SigningKey is not defaulted; login and
// verification fail with ErrBadSettings instead.
type Config struct {
	// SigningKey is the single shared HMAC secret.
	SigningKey string
	// Issuer is the iss claim stamped on minted tokens.
	Issuer string
	// TokenTTL is the access token lifetime. Zero means DefaultTokenTTL.
	TokenTTL time.Duration
	// APIPrefix scopes bearer authentication to API traffic. Requests whose
	// path does not contain the prefix are left untouched.
	APIPrefix string
	// RefreshCookieName names the HTTP-only cookie carrying the refresh
	// token. Defaults to "refreshToken".
	RefreshCookieName string
	// CORSEnabled toggles emission of the allow-headers header.
	CORSEnabled bool
	// CORSAllowedHeaders overrides DefaultCORSAllowedHeaders when set.
	CORSAllowedHeaders string
}

// Validate will run validation rules
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SigningKey, validation.Required),
		validation.Field(&c.Issuer, validation.Required),
		validation.Field(&c.TokenTTL, validation.Min(time.Duration(0))),
	)
}

// WithDefaults returns a copy with zero values replaced by defaults. The
// signing key is intentionally left alone.
func (c Config) WithDefaults() Config {
	if c.TokenTTL == 0 {
		c.TokenTTL = DefaultTokenTTL
	}
	if c.APIPrefix == "" {
		c.APIPrefix = DefaultAPIPrefix
	}
	if c.RefreshCookieName == "" {
		c.RefreshCookieName = "refreshToken"
	}
	if c.CORSAllowedHeaders == "" {
		c.CORSAllowedHeaders = DefaultCORSAllowedHeaders
	}
	return c
}
