package hostauth

import (
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-hostauth/middleware/bearerware"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteAuthenticator adapts the auth layer to go-router handlers: it logs
// users in and out, sets the refresh cookie, and maps rich errors to JSON
// responses with the host's status conventions.
type RouteAuthenticator struct {
	auth           *Auther
	cfg            Config
	cookieDuration time.Duration
	Logger         Logger
	ErrorHandler   func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther *Auther, cfg Config) (*RouteAuthenticator, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cookieDuration := DefaultTokenTTL
	if cfg.TokenTTL > 0 {
		cookieDuration = cfg.TokenTTL
	}

	a := &RouteAuthenticator{
		cfg:            cfg,
		auth:           auther,
		Logger:         defLogger{},
		cookieDuration: cookieDuration,
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// ProtectedRoute guards a route group with bearer token authentication.
func (a *RouteAuthenticator) ProtectedRoute(errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return bearerware.New(bearerware.Config{
			ErrorHandler:   errorHandler,
			TokenValidator: bearerValidator{ts: a.auth.TokenService()},
			PathPrefix:     a.cfg.APIPrefix,
		})
	}
}

// bearerValidator bridges the token service into the middleware's local
// validator interface.
type bearerValidator struct {
	ts TokenService
}

func (v bearerValidator) Validate(tokenString string) (bearerware.AuthClaims, error) {
	claims, err := v.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Login authenticates the payload credentials and, on success, stores the
// refresh token in an HTTP only cookie scoped to the API prefix.
func (a *RouteAuthenticator) Login(ctx router.Context, payload LoginPayload) (*LoginResult, error) {
	result, err := a.auth.Login(ctx.Context(), payload.GetLogin(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error", "error", err)
		return nil, err
	}

	a.setRefreshCookie(ctx, result.RefreshToken, a.cookieDuration)

	return result, nil
}

func (a *RouteAuthenticator) Logout(ctx router.Context) {
	a.cookieDel(ctx, a.cfg.RefreshCookieName)
}

// ApplyCORSHeaders mirrors the host's CORS behavior for the auth endpoints.
func (a *RouteAuthenticator) ApplyCORSHeaders(ctx router.Context) {
	if !a.cfg.CORSEnabled {
		return
	}
	ctx.SetHeader("Access-Control-Allow-Headers", a.cfg.CORSAllowedHeaders)
}

func (a *RouteAuthenticator) setRefreshCookie(c router.Context, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.RefreshCookieName,
		Value:    val,
		Path:     "/" + a.cfg.APIPrefix,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/" + a.cfg.APIPrefix,
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	a.Logger.Info(
		"Request error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return c.JSON(HTTPStatusForError(richErr), map[string]any{
		"code":    HTTPStatusForError(richErr),
		"message": richErr.Message,
	})
}

// HTTPStatusForError maps rich errors to the host's status conventions:
// credential and settings failures are forbidden, token and input problems
// are bad requests, persistence failures are server errors.
func HTTPStatusForError(err error) int {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	switch richErr.TextCode {
	case ErrBadSettings.TextCode, ErrBadCredentials.TextCode:
		return http.StatusForbidden
	}

	// The host API reports every remaining failure as a client error,
	// except persistence problems.
	switch richErr.Category {
	case goerrors.CategoryInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
