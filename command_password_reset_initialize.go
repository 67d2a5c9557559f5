package hostauth

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// GenericRecoveryAck is returned for every forgot-password request, whether
// or not the email resolves to an account, so responses cannot be used to
// enumerate accounts.
const GenericRecoveryAck = "Password reset instructions have been sent to your email."

const resetMailSubject = "Password reset link"

const resetMailBody = `Hello, %[1]s.

Someone has requested a password reset for your account.
If it wasn't you, then ignore this letter.

Login: %[1]s
Reset code: %[2]s`

type ForgotPasswordMessage struct {
	Email      string `json:"email" example:"pepe.rone@example.com" doc:"Account email."`
	OnResponse func(resp *ForgotPasswordResponse)
}

func (p ForgotPasswordMessage) Type() string { return "user.password_forgot" }

type ForgotPasswordResponse struct {
	Message string
	Success bool
}

type ForgotPasswordHandler struct {
	dir    UserDirectory
	mailer Mailer
	logger Logger
}

// NewForgotPasswordHandler creates a handler with sane defaults.
func NewForgotPasswordHandler(dir UserDirectory, mailer Mailer) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{
		dir:    dir,
		mailer: mailer,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the handler.
func (h *ForgotPasswordHandler) WithLogger(logger Logger) *ForgotPasswordHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *ForgotPasswordHandler) Execute(ctx context.Context, event ForgotPasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password recovery",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ForgotPasswordHandler) execute(ctx context.Context, event ForgotPasswordMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	resp := &ForgotPasswordResponse{Message: GenericRecoveryAck}

	user, err := h.dir.FindByEmail(ctx, event.Email)
	if err != nil || user == nil {
		// Unknown email: same ack, no mail, no error. Anything else would
		// let a caller probe which addresses have accounts.
		h.logger.Debug("password recovery for unknown email")
		resp.Success = true
		h.respond(event, resp)
		return nil
	}

	key, err := h.dir.MintResetKey(ctx, user)
	if err != nil {
		h.logger.Warn("reset key mint failed", "user_id", user.ID(), "error", err)
		resp.Success = true
		h.respond(event, resp)
		return nil
	}

	body := fmt.Sprintf(resetMailBody, user.Login(), key)
	if err := h.mailer.Send(ctx, user.Email(), resetMailSubject, body); err != nil {
		h.logger.Error("reset mail send failed", "user_id", user.ID(), "error", err)
		return goerrors.Wrap(err, ErrMailDelivery.Category, ErrMailDelivery.Message).
			WithTextCode(ErrMailDelivery.TextCode)
	}

	resp.Success = true
	h.respond(event, resp)

	return nil
}

func (h *ForgotPasswordHandler) respond(event ForgotPasswordMessage, resp *ForgotPasswordResponse) {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
}
