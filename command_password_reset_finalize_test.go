package hostauth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-hostauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResetPasswordHandler(t *testing.T) {
	bob := TestUser{
		id:    2,
		login: "bob",
		email: "bob@example.com",
	}

	t.Run("valid reset code changes password and notifies", func(t *testing.T) {
		dir := new(MockUserDirectory)
		dir.On("CheckResetKey", mock.Anything, "reset-key-123", "bob").Return(bob, nil)
		dir.On("SetPassword", mock.Anything, int64(2), "new-password").Return(nil)

		mailer := new(MockMailer)
		mailer.On("Send", mock.Anything, "bob@example.com", "Your password has been changed",
			mock.AnythingOfType("string")).Return(nil)

		handler := hostauth.NewResetPasswordHandler(dir, mailer)
		err := handler.Execute(context.Background(), hostauth.ResetPasswordMessage{
			Login:       "bob",
			ResetCode:   "reset-key-123",
			NewPassword: "new-password",
		})

		require.NoError(t, err)
		dir.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("invalid reset code", func(t *testing.T) {
		dir := new(MockUserDirectory)
		dir.On("CheckResetKey", mock.Anything, "bogus", "bob").
			Return(nil, hostauth.ErrInvalidResetKey)

		mailer := new(MockMailer)

		handler := hostauth.NewResetPasswordHandler(dir, mailer)
		err := handler.Execute(context.Background(), hostauth.ResetPasswordMessage{
			Login:       "bob",
			ResetCode:   "bogus",
			NewPassword: "new-password",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), hostauth.ErrInvalidResetKey.Message)
		dir.AssertNotCalled(t, "SetPassword", mock.Anything, mock.Anything, mock.Anything)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mail failure after commit keeps the new password", func(t *testing.T) {
		dir := new(MockUserDirectory)
		dir.On("CheckResetKey", mock.Anything, "reset-key-123", "bob").Return(bob, nil)
		dir.On("SetPassword", mock.Anything, int64(2), "new-password").Return(nil)

		mailer := new(MockMailer)
		mailer.On("Send", mock.Anything, "bob@example.com", mock.Anything, mock.Anything).
			Return(errors.New("smtp down"))

		handler := hostauth.NewResetPasswordHandler(dir, mailer)
		err := handler.Execute(context.Background(), hostauth.ResetPasswordMessage{
			Login:       "bob",
			ResetCode:   "reset-key-123",
			NewPassword: "new-password",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), hostauth.ErrMailDelivery.Message)
		dir.AssertCalled(t, "SetPassword", mock.Anything, int64(2), "new-password")
	})
}
