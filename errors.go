package hostauth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrBadSettings is returned when no signing secret has been configured.
// We refuse to mint or verify anything rather than fall back to a default.
var ErrBadSettings = goerrors.New("Can't authenticate user. Bad settings", goerrors.CategoryAuth).
	WithTextCode("BAD_SETTINGS")

// ErrBadCredentials is the single error for any credential verification
// failure. It never states which field was wrong.
var ErrBadCredentials = goerrors.New("Bad credentials", goerrors.CategoryAuth).
	WithTextCode("BAD_CREDENTIALS")

// ErrSessionPersist means the refresh session could not be recorded. Login
// treats this as fatal: no token is handed out that the host cannot verify
// a session for.
var ErrSessionPersist = goerrors.New("Can't create user refresh session", goerrors.CategoryInternal).
	WithTextCode("SESSION_PERSIST")

// ErrTokenExpired token exp claim is in the past
var ErrTokenExpired = goerrors.New("Token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenNotYetValid token nbf claim is in the future
var ErrTokenNotYetValid = goerrors.New("Token is not valid yet", goerrors.CategoryAuth).
	WithTextCode("TOKEN_NOT_YET_VALID")

// ErrTokenSignature signature does not verify against the shared secret
var ErrTokenSignature = goerrors.New("Token signature is invalid", goerrors.CategoryAuth).
	WithTextCode("TOKEN_SIGNATURE_INVALID")

// ErrTokenMalformed claims cannot be parsed, or the algorithm is absent or
// not the configured one
var ErrTokenMalformed = goerrors.New("Token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED")

// ErrInvalidResetKey the reset key does not match the login binding
var ErrInvalidResetKey = goerrors.New("Invalid reset code", goerrors.CategoryValidation).
	WithTextCode("INVALID_RESET_KEY")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("Identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrInvalidPassword the old password does not match the stored hash
var ErrInvalidPassword = goerrors.New("Invalid password", goerrors.CategoryValidation).
	WithTextCode("INVALID_PASSWORD")

// ErrMailDelivery mail was attempted and the mailer reported failure. Any
// state change that preceded the send has already committed.
var ErrMailDelivery = goerrors.New("Send mail error", goerrors.CategoryOperation).
	WithTextCode("MAIL_DELIVERY")

// ErrNoEmptyString empty input where a value is required
var ErrNoEmptyString = goerrors.New("Value should not be empty", goerrors.CategoryBadInput).
	WithTextCode("EMPTY_VALUE")

// ErrMismatchedHashAndPassword bcrypt comparison failure
var ErrMismatchedHashAndPassword = goerrors.New("Mismatched hash and password", goerrors.CategoryValidation).
	WithTextCode("HASH_MISMATCH")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
