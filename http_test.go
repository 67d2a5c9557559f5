package hostauth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/goliatone/go-hostauth"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuther(t *testing.T) *hostauth.Auther {
	t.Helper()

	alice := TestUser{id: 1, login: "alice", displayName: "Alice Adams"}

	gateway := new(MockCredentialGateway)
	gateway.On("VerifyCredentials", mock.Anything, "alice", "s3cret").Return(alice, nil)
	gateway.On("VerifyCredentials", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, hostauth.ErrBadCredentials)

	attrs := new(MockAttributeStore)
	attrs.On("GetAttribute", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	attrs.On("SetAttribute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	return hostauth.NewAuthenticator(gateway, hostauth.NewSessionStore(attrs), testConfig())
}

func TestNewHTTPAuthenticatorValidatesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SigningKey = ""

	_, err := hostauth.NewHTTPAuthenticator(newTestAuther(t), cfg)
	require.Error(t, err)
}

func TestRouteAuthenticatorLogin(t *testing.T) {
	auther, err := hostauth.NewHTTPAuthenticator(newTestAuther(t), testConfig())
	require.NoError(t, err)

	t.Run("success sets refresh cookie scoped to the API prefix", func(t *testing.T) {
		ctx := new(MockContext)
		ctx.On("Context").Return(context.Background())

		var cookie *router.Cookie
		ctx.On("Cookie", mock.Anything).Run(func(args mock.Arguments) {
			cookie = args.Get(0).(*router.Cookie)
		})

		result, err := auther.Login(ctx, MockLoginPayload{Login: "alice", Password: "s3cret"})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, int64(1), result.UserID)
		assert.Equal(t, "alice", result.Login)

		require.NotNil(t, cookie, "login must set the refresh cookie")
		assert.Equal(t, "refreshToken", cookie.Name)
		assert.Equal(t, result.RefreshToken, cookie.Value)
		assert.Equal(t, "/api/v1", cookie.Path)
		assert.True(t, cookie.HTTPOnly)
	})

	t.Run("failure surfaces the auth error and sets nothing", func(t *testing.T) {
		ctx := new(MockContext)
		ctx.On("Context").Return(context.Background())

		result, err := auther.Login(ctx, MockLoginPayload{Login: "alice", Password: "wrong"})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, hostauth.ErrBadCredentials)
		ctx.AssertNotCalled(t, "Cookie", mock.Anything)
	})
}

func TestRouteAuthenticatorLogout(t *testing.T) {
	auther, err := hostauth.NewHTTPAuthenticator(newTestAuther(t), testConfig())
	require.NoError(t, err)

	ctx := new(MockContext)

	var cookie *router.Cookie
	ctx.On("Cookie", mock.Anything).Run(func(args mock.Arguments) {
		cookie = args.Get(0).(*router.Cookie)
	})

	auther.Logout(ctx)

	require.NotNil(t, cookie)
	assert.Equal(t, "refreshToken", cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()), "deletion cookie expires in the past")
}

func TestRouteAuthenticatorCORSHeaders(t *testing.T) {
	t.Run("disabled emits nothing", func(t *testing.T) {
		auther, err := hostauth.NewHTTPAuthenticator(newTestAuther(t), testConfig())
		require.NoError(t, err)

		ctx := new(MockContext)
		auther.ApplyCORSHeaders(ctx)
		ctx.AssertNotCalled(t, "SetHeader", mock.Anything, mock.Anything)
	})

	t.Run("enabled emits the allow headers list", func(t *testing.T) {
		cfg := testConfig()
		cfg.CORSEnabled = true

		auther, err := hostauth.NewHTTPAuthenticator(newTestAuther(t), cfg)
		require.NoError(t, err)

		ctx := new(MockContext)
		ctx.On("SetHeader", "Access-Control-Allow-Headers", hostauth.DefaultCORSAllowedHeaders).
			Return(ctx)

		auther.ApplyCORSHeaders(ctx)
		ctx.AssertExpectations(t)
	})
}

func TestHTTPStatusForError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"bad settings is forbidden", hostauth.ErrBadSettings, http.StatusForbidden},
		{"bad credentials is forbidden", hostauth.ErrBadCredentials, http.StatusForbidden},
		{"expired token is bad request", hostauth.ErrTokenExpired, http.StatusBadRequest},
		{"not yet valid token is bad request", hostauth.ErrTokenNotYetValid, http.StatusBadRequest},
		{"bad signature is bad request", hostauth.ErrTokenSignature, http.StatusBadRequest},
		{"malformed token is bad request", hostauth.ErrTokenMalformed, http.StatusBadRequest},
		{"invalid reset key is bad request", hostauth.ErrInvalidResetKey, http.StatusBadRequest},
		{"session persist is server error", hostauth.ErrSessionPersist, http.StatusInternalServerError},
		{"identity not found is bad request", hostauth.ErrIdentityNotFound, http.StatusBadRequest},
		{"mail delivery is bad request", hostauth.ErrMailDelivery, http.StatusBadRequest},
		{"plain error is server error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, hostauth.HTTPStatusForError(tc.err))
		})
	}
}
