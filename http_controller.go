package hostauth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthControllerRoutes are the route paths registered under the API prefix.
type AuthControllerRoutes struct {
	Login          string
	Logout         string
	Register       string
	PasswordForgot string
	PasswordReset  string
	PasswordChange string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Routes       *AuthControllerRoutes
	Auther       *RouteAuthenticator
	Directory    UserDirectory
	Mailer       Mailer
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerAuther(auther *RouteAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerDirectory(dir UserDirectory) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Directory = dir
		return c
	}
}

func WithControllerMailer(mailer Mailer) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Mailer = mailer
		return c
	}
}

func WithControllerErrorHandler(handler router.ErrorHandler) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if handler != nil {
			c.ErrorHandler = handler
		}
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:          "/login",
			Logout:         "/logout",
			Register:       "/register",
			PasswordForgot: "/password/forgot",
			PasswordReset:  "/password/reset",
			PasswordChange: "/password/change",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in auth controller...")
	}

	if c.Directory == nil {
		panic("Missing UserDirectory in auth controller...")
	}

	if c.Mailer == nil {
		c.Mailer = NoopMailer{}
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = c.Auther.ErrorHandler
	}

	return c
}

// RegisterAuthRoutes wires the auth endpoints under the configured API prefix.
func RegisterAuthRoutes[T any](app router.Router[T], prefix string, opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	route := func(path string) string {
		return fmt.Sprintf("/%s%s", prefix, path)
	}

	app.Post(route(controller.Routes.Login), controller.LoginPost).
		SetName("auth.login")

	app.Post(route(controller.Routes.Logout), controller.LogoutPost).
		SetName("auth.logout")

	app.Post(route(controller.Routes.Register), controller.RegisterPost).
		SetName("auth.register")

	app.Post(route(controller.Routes.PasswordForgot), controller.PasswordForgotPost).
		SetName("auth.pwd-forgot")

	app.Post(route(controller.Routes.PasswordReset), controller.PasswordResetPost).
		SetName("auth.pwd-reset")

	app.Post(route(controller.Routes.PasswordChange), controller.PasswordChangePost).
		SetName("auth.pwd-change")
}

// LoginRequest payload
type LoginRequest struct {
	Login    string `form:"login" json:"login"`
	Password string `form:"password" json:"password"`
}

// GetLogin returns the login name
func (r LoginRequest) GetLogin() string {
	return r.Login
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	a.Auther.ApplyCORSHeaders(ctx)

	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.badPayload(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return a.invalidPayload(ctx, err)
	}

	if a.Debug {
		a.Logger.Debug("login payload", "payload", print.MaybePrettyJSON(payload))
	}

	result, err := a.Auther.Login(ctx, payload)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, result)
}

func (a *AuthController) LogoutPost(ctx router.Context) error {
	a.Auther.ApplyCORSHeaders(ctx)
	a.Auther.Logout(ctx)
	return ctx.NoContent(fiber.StatusNoContent)
}

// RegisterRequest payload
type RegisterRequest struct {
	Login     string `form:"login" json:"login"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"firstName" json:"firstName"`
	LastName  string `form:"lastName" json:"lastName"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required, validation.Length(1, 60)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.FirstName, validation.Length(0, 200)),
		validation.Field(&r.LastName, validation.Length(0, 200)),
	)
}

func (a *AuthController) RegisterPost(ctx router.Context) error {
	a.Auther.ApplyCORSHeaders(ctx)

	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.badPayload(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return a.invalidPayload(ctx, err)
	}

	var resp *RegisterUserResponse

	handler := NewRegisterUserHandler(a.Directory).WithLogger(a.Logger)
	err := handler.Execute(ctx.Context(), RegisterUserMessage{
		Login:     payload.Login,
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		OnResponse: func(r *RegisterUserResponse) {
			resp = r
		},
	})
	if err != nil {
		a.Logger.Error("register user error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusCreated, resp)
}

// ForgotPasswordRequest payload
type ForgotPasswordRequest struct {
	Email string `form:"email" json:"email"`
}

// Validate will run validation rules
func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (a *AuthController) PasswordForgotPost(ctx router.Context) error {
	a.Auther.ApplyCORSHeaders(ctx)

	payload := new(ForgotPasswordRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.badPayload(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return a.invalidPayload(ctx, err)
	}

	var resp *ForgotPasswordResponse

	handler := NewForgotPasswordHandler(a.Directory, a.Mailer).WithLogger(a.Logger)
	err := handler.Execute(ctx.Context(), ForgotPasswordMessage{
		Email: payload.Email,
		OnResponse: func(r *ForgotPasswordResponse) {
			resp = r
		},
	})
	if err != nil {
		a.Logger.Error("password recovery error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	message := GenericRecoveryAck
	if resp != nil {
		message = resp.Message
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": message,
	})
}

// ResetPasswordRequest payload
type ResetPasswordRequest struct {
	Login       string `form:"login" json:"login"`
	ResetCode   string `form:"resetCode" json:"resetCode"`
	NewPassword string `form:"newPassword" json:"newPassword"`
}

// Validate will run validation rules
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required),
		validation.Field(&r.ResetCode, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 100)),
	)
}

func (a *AuthController) PasswordResetPost(ctx router.Context) error {
	a.Auther.ApplyCORSHeaders(ctx)

	payload := new(ResetPasswordRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.badPayload(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return a.invalidPayload(ctx, err)
	}

	handler := NewResetPasswordHandler(a.Directory, a.Mailer).WithLogger(a.Logger)
	err := handler.Execute(ctx.Context(), ResetPasswordMessage{
		Login:       payload.Login,
		ResetCode:   payload.ResetCode,
		NewPassword: payload.NewPassword,
	})
	if err != nil {
		a.Logger.Error("password reset error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": "Password has been changed.",
	})
}

// ChangePasswordRequest payload
type ChangePasswordRequest struct {
	Login       string `form:"login" json:"login"`
	OldPassword string `form:"oldPassword" json:"oldPassword"`
	NewPassword string `form:"newPassword" json:"newPassword"`
}

// Validate will run validation rules
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required),
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 100)),
	)
}

func (a *AuthController) PasswordChangePost(ctx router.Context) error {
	a.Auther.ApplyCORSHeaders(ctx)

	payload := new(ChangePasswordRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.badPayload(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return a.invalidPayload(ctx, err)
	}

	handler := NewChangePasswordHandler(a.Directory, a.Mailer).WithLogger(a.Logger)
	err := handler.Execute(ctx.Context(), ChangePasswordMessage{
		Login:       payload.Login,
		OldPassword: payload.OldPassword,
		NewPassword: payload.NewPassword,
	})
	if err != nil {
		a.Logger.Error("password change error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": "Password has been changed.",
	})
}

func (a *AuthController) badPayload(ctx router.Context, err error) error {
	a.Logger.Error("payload parse error", "error", err)
	return ctx.JSON(fiber.StatusBadRequest, map[string]any{
		"code":    fiber.StatusBadRequest,
		"message": "Error parsing body",
	})
}

func (a *AuthController) invalidPayload(ctx router.Context, err error) error {
	a.Logger.Error("payload validation error", "error", err)
	return ctx.JSON(fiber.StatusBadRequest, map[string]any{
		"code":       fiber.StatusBadRequest,
		"message":    "Error validating payload",
		"validation": FormatValidationErrorToMap(err),
	})
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field to message map.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}

	var verrs validation.Errors
	if goerrors.As(err, &verrs) {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	if err != nil {
		out["payload"] = err.Error()
	}

	return out
}
