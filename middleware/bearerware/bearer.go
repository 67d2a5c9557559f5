package bearerware

import (
	"errors"
	"strings"

	"github.com/goliatone/go-router"
)

var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

const (
	// HeaderAuthorization is the primary bearer token header.
	HeaderAuthorization = "Authorization"
	// HeaderRedirectAuthorization carries the token for clients behind
	// proxies that strip the primary header.
	HeaderRedirectAuthorization = "Redirect-Authorization"
)

// TokenValidator interface for validating tokens without import cycles.
// This mirrors the TokenService.Validate method from the hostauth package.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims interface for structured claims without import cycles.
// This mirrors the AuthClaims interface from the hostauth package.
type AuthClaims interface {
	UserID() int64
	Issuer() string
}

type Config struct {
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	ContextKey     string
	// PathPrefix restricts authentication to requests whose path contains
	// it. Requests outside the prefix pass through untouched.
	PathPrefix string
	AuthScheme string
	// TokenValidator is required for token validation
	TokenValidator TokenValidator
}

// New builds a handler that authenticates bearer tokens on API requests.
// Requests outside the configured path prefix, and API requests carrying no
// token at all, continue anonymously; a token that is present but fails
// validation is rejected.
func New(config ...Config) router.HandlerFunc {
	cfg := GetDefaultConfig(config...)

	return func(ctx router.Context) error {
		if cfg.Filter != nil && cfg.Filter(ctx) {
			return ctx.Next()
		}

		if cfg.PathPrefix != "" && !strings.Contains(ctx.Path(), cfg.PathPrefix) {
			return ctx.Next()
		}

		raw := rawTokenFromHeaders(ctx, cfg.AuthScheme)
		if raw == "" {
			return ctx.Next()
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		ctx.Locals(cfg.ContextKey, claims)

		return cfg.SuccessHandler(ctx)
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c router.Context, err error) error {
			return c.Status(router.StatusBadRequest).SendString(err.Error())
		}
	}

	if cfg.TokenValidator == nil {
		panic("AUTH: bearer middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// rawTokenFromHeaders checks the primary header first and falls back to the
// redirect alias. A header that is present but not a bearer credential is
// returned as-is so validation can reject it.
func rawTokenFromHeaders(c router.Context, authScheme string) string {
	for _, header := range []string{HeaderAuthorization, HeaderRedirectAuthorization} {
		a := c.GetString(header, "")
		if a == "" {
			continue
		}

		l := len(authScheme)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:])
		}

		return a
	}

	return ""
}
