package hostauth

import (
	"net/http"
	"strings"
)

// Header names the bearer credential is read from. Some reverse proxies
// strip Authorization and re-expose it under the redirect alias.
const (
	HeaderAuthorization         = "Authorization"
	HeaderRedirectAuthorization = "Redirect-Authorization"
)

// TokenIdentity is the identity a validated bearer token resolves to.
type TokenIdentity struct {
	UserID int64
}

// RequestAuthenticator decides, per request, whether a bearer token
// resolves to a user. It keeps no state between requests.
type RequestAuthenticator struct {
	validator TokenValidator
	apiPrefix string
	logger    Logger
}

// TokenValidator validates tokens and extracts claims without tying callers
// to a specific signing implementation.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// NewRequestAuthenticator builds an authenticator scoped to the configured
// API prefix.
func NewRequestAuthenticator(validator TokenValidator, cfg Config) *RequestAuthenticator {
	cfg = cfg.WithDefaults()
	return &RequestAuthenticator{
		validator: validator,
		apiPrefix: cfg.APIPrefix,
		logger:    defLogger{},
	}
}

// WithLogger overrides the logger used by the authenticator.
func (ra *RequestAuthenticator) WithLogger(logger Logger) *RequestAuthenticator {
	if logger != nil {
		ra.logger = logger
	}
	return ra
}

// Resolve returns the identity for the request, (nil, nil) to decline, or
// an error for a credential that was supplied but failed verification.
//
//   - an already resolved identity passes through untouched, so this
//     resolver composes with others
//   - non-API paths and requests with no bearer header decline (anonymous)
//   - a present-but-bad credential is an error, never a silent fall back to
//     anonymous
func (ra *RequestAuthenticator) Resolve(current *TokenIdentity, path string, header http.Header) (*TokenIdentity, error) {
	if current != nil {
		return current, nil
	}

	if !strings.Contains(path, ra.apiPrefix) {
		return nil, nil
	}

	authHeader := header.Get(HeaderAuthorization)
	if authHeader == "" {
		authHeader = header.Get(HeaderRedirectAuthorization)
	}

	if authHeader == "" {
		return nil, nil
	}

	// A header that does not match "Bearer <token>" yields an empty token,
	// which fails validation below rather than short-circuiting here.
	raw := ExtractBearerToken(authHeader)

	claims, err := ra.validator.Validate(raw)
	if err != nil {
		ra.logger.Info("Request token validation failed", "error", err)
		return nil, err
	}

	return &TokenIdentity{UserID: claims.UserID()}, nil
}

// ExtractBearerToken pulls the token out of a "Bearer <token>" header
// value. A value that does not match the scheme yields the empty string.
func ExtractBearerToken(headerValue string) string {
	const scheme = "Bearer"

	l := len(scheme)
	if len(headerValue) > l+1 && strings.EqualFold(headerValue[:l], scheme) {
		return strings.TrimSpace(headerValue[l:])
	}

	return ""
}
