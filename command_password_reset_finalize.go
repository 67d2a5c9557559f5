package hostauth

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const passwordChangedMailSubject = "Your password has been changed"

const passwordChangedMailBody = `Hello, %s.

The password for your account was just changed.
If you did not do this, contact the site administrator immediately.`

type ResetPasswordMessage struct {
	Login       string `json:"login" example:"pepe.rone" doc:"Account login."`
	ResetCode   string `json:"resetCode" doc:"One time reset code from the recovery email."`
	NewPassword string `json:"newPassword" doc:"Replacement password."`
}

func (p ResetPasswordMessage) Type() string { return "user.password_reset" }

type ResetPasswordHandler struct {
	dir    UserDirectory
	mailer Mailer
	logger Logger
}

// NewResetPasswordHandler creates a handler with sane defaults.
func NewResetPasswordHandler(dir UserDirectory, mailer Mailer) *ResetPasswordHandler {
	return &ResetPasswordHandler{
		dir:    dir,
		mailer: mailer,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the handler.
func (h *ResetPasswordHandler) WithLogger(logger Logger) *ResetPasswordHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *ResetPasswordHandler) Execute(ctx context.Context, event ResetPasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ResetPasswordHandler) execute(ctx context.Context, event ResetPasswordMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user, err := h.dir.CheckResetKey(ctx, event.ResetCode, event.Login)
	if err != nil {
		h.logger.Debug("reset key rejected", "login", event.Login, "error", err)
		return goerrors.Wrap(err, ErrInvalidResetKey.Category, ErrInvalidResetKey.Message).
			WithTextCode(ErrInvalidResetKey.TextCode)
	}

	if err := h.dir.SetPassword(ctx, user.ID(), event.NewPassword); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update password")
	}

	// The password change is already committed; a mail failure must not
	// undo it, only surface as a delivery error.
	body := fmt.Sprintf(passwordChangedMailBody, user.Login())
	if err := h.mailer.Send(ctx, user.Email(), passwordChangedMailSubject, body); err != nil {
		h.logger.Error("password change mail failed", "user_id", user.ID(), "error", err)
		return goerrors.Wrap(err, ErrMailDelivery.Category, ErrMailDelivery.Message).
			WithTextCode(ErrMailDelivery.TextCode)
	}

	return nil
}
