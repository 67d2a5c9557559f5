package hostauth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of a host user identity
type Identity interface {
	ID() int64
	Login() string
	DisplayName() string
	Email() string
}

// UserRecord is an Identity plus the stored credential hash. The host
// directory returns records; the core never persists the hash itself.
type UserRecord interface {
	Identity
	PasswordHash() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, login, password string) (*LoginResult, error)
}

// CredentialGateway verifies a login/password pair against the host user
// directory. A failed verification never tells the caller whether the login
// or the password was wrong.
type CredentialGateway interface {
	VerifyCredentials(ctx context.Context, login, password string) (Identity, error)
}

// UserDirectory is the host-side user store the recovery and registration
// flows delegate to.
type UserDirectory interface {
	FindByLogin(ctx context.Context, login string) (UserRecord, error)
	FindByEmail(ctx context.Context, email string) (UserRecord, error)
	SetPassword(ctx context.Context, userID int64, newPassword string) error
	CheckPassword(ctx context.Context, candidate, storedHash string, userID int64) (bool, error)
	MintResetKey(ctx context.Context, user UserRecord) (string, error)
	CheckResetKey(ctx context.Context, key, login string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
}

// CreateUserInput is the input for UserDirectory.CreateUser.
type CreateUserInput struct {
	Login     string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserAttributeStore reads and writes per-user attributes on the host user
// record. GetAttribute returns (nil, nil) when the attribute is absent.
// SetAttribute replaces the whole value, all-or-nothing.
type UserAttributeStore interface {
	GetAttribute(ctx context.Context, userID int64, key string) (any, error)
	SetAttribute(ctx context.Context, userID int64, key string, value any) error
}

// Mailer delivers notification mail for the recovery flows.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type LoginPayload interface {
	GetLogin() string
	GetPassword() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
