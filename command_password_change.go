package hostauth

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type ChangePasswordMessage struct {
	Login       string `json:"login" example:"pepe.rone" doc:"Account login."`
	OldPassword string `json:"oldPassword" doc:"Current password."`
	NewPassword string `json:"newPassword" doc:"Replacement password."`
}

func (p ChangePasswordMessage) Type() string { return "user.password_change" }

type ChangePasswordHandler struct {
	dir    UserDirectory
	mailer Mailer
	logger Logger
}

// NewChangePasswordHandler creates a handler with sane defaults.
func NewChangePasswordHandler(dir UserDirectory, mailer Mailer) *ChangePasswordHandler {
	return &ChangePasswordHandler{
		dir:    dir,
		mailer: mailer,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the handler.
func (h *ChangePasswordHandler) WithLogger(logger Logger) *ChangePasswordHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *ChangePasswordHandler) Execute(ctx context.Context, event ChangePasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password change",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ChangePasswordHandler) execute(ctx context.Context, event ChangePasswordMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user, err := h.dir.FindByLogin(ctx, event.Login)
	if err != nil || user == nil {
		return goerrors.Wrap(err, ErrIdentityNotFound.Category, ErrIdentityNotFound.Message).
			WithTextCode(ErrIdentityNotFound.TextCode).
			WithCode(goerrors.CodeNotFound)
	}

	ok, err := h.dir.CheckPassword(ctx, event.OldPassword, user.PasswordHash(), user.ID())
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to verify current password")
	}

	if !ok {
		return ErrInvalidPassword
	}

	if err := h.dir.SetPassword(ctx, user.ID(), event.NewPassword); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update password")
	}

	body := fmt.Sprintf(passwordChangedMailBody, user.Login())
	if err := h.mailer.Send(ctx, user.Email(), passwordChangedMailSubject, body); err != nil {
		h.logger.Error("password change mail failed", "user_id", user.ID(), "error", err)
		return goerrors.Wrap(err, ErrMailDelivery.Category, ErrMailDelivery.Message).
			WithTextCode(ErrMailDelivery.TextCode)
	}

	return nil
}
