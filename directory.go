package hostauth

import (
	"context"
	"encoding/json"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const resetKeyMetaKey = "password_reset_key"

// DefaultResetKeyTTL is how long a minted reset key stays redeemable.
const DefaultResetKeyTTL = 24 * time.Hour

type resetKeyRecord struct {
	KeyHash   string    `json:"key_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HostDirectory exposes the host user tables as the credential, directory,
// and attribute interfaces the auth layer consumes.
type HostDirectory struct {
	repo        Users
	resetKeyTTL time.Duration
	logger      Logger
	timeFunc    func() time.Time
}

var (
	_ CredentialGateway  = (*HostDirectory)(nil)
	_ UserDirectory      = (*HostDirectory)(nil)
	_ UserAttributeStore = (*HostDirectory)(nil)
)

// NewHostDirectory creates a directory with sane defaults.
func NewHostDirectory(repo Users) *HostDirectory {
	return &HostDirectory{
		repo:        repo,
		resetKeyTTL: DefaultResetKeyTTL,
		logger:      defLogger{},
		timeFunc:    time.Now,
	}
}

// WithLogger overrides the logger used by the directory.
func (d *HostDirectory) WithLogger(logger Logger) *HostDirectory {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// WithResetKeyTTL overrides how long reset keys stay valid.
func (d *HostDirectory) WithResetKeyTTL(ttl time.Duration) *HostDirectory {
	if ttl > 0 {
		d.resetKeyTTL = ttl
	}
	return d
}

// WithTimeFunc overrides the clock, mostly for tests.
func (d *HostDirectory) WithTimeFunc(now func() time.Time) *HostDirectory {
	if now != nil {
		d.timeFunc = now
	}
	return d
}

// VerifyCredentials checks a login/password pair against the stored hash.
func (d *HostDirectory) VerifyCredentials(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := d.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, ErrBadCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		d.logger.Debug("password mismatch", "user_id", user.ID)
		return nil, ErrBadCredentials
	}

	return NewIdentityFromUser(user), nil
}

func (d *HostDirectory) FindByLogin(ctx context.Context, login string) (UserRecord, error) {
	user, err := d.repo.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	return NewIdentityFromUser(user), nil
}

func (d *HostDirectory) FindByEmail(ctx context.Context, email string) (UserRecord, error) {
	user, err := d.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return NewIdentityFromUser(user), nil
}

func (d *HostDirectory) SetPassword(ctx context.Context, userID int64, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return d.repo.UpdatePasswordHash(ctx, userID, hash)
}

func (d *HostDirectory) CheckPassword(ctx context.Context, candidate, storedHash string, userID int64) (bool, error) {
	if err := ComparePasswordAndHash(candidate, storedHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MintResetKey issues a fresh one time reset key for the user. Only a hash
// of the key is persisted; minting again replaces any outstanding key.
func (d *HostDirectory) MintResetKey(ctx context.Context, user UserRecord) (string, error) {
	key := uuid.NewString()

	keyHash, err := HashPassword(key)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(resetKeyRecord{
		KeyHash:   keyHash,
		ExpiresAt: d.timeFunc().Add(d.resetKeyTTL),
	})
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode reset key")
	}

	if err := d.repo.SetMeta(ctx, user.ID(), resetKeyMetaKey, payload); err != nil {
		return "", err
	}

	return key, nil
}

// CheckResetKey validates a reset key for the given login and consumes it.
// A key that matched once can never be redeemed again.
func (d *HostDirectory) CheckResetKey(ctx context.Context, key, login string) (UserRecord, error) {
	user, err := d.repo.GetByLogin(ctx, login)
	if err != nil {
		return nil, ErrInvalidResetKey
	}

	raw, err := d.repo.GetMeta(ctx, user.ID, resetKeyMetaKey)
	if err != nil || raw == nil {
		return nil, ErrInvalidResetKey
	}

	var record resetKeyRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, ErrInvalidResetKey
	}

	if d.timeFunc().After(record.ExpiresAt) {
		return nil, ErrInvalidResetKey
	}

	if err := ComparePasswordAndHash(key, record.KeyHash); err != nil {
		return nil, ErrInvalidResetKey
	}

	if err := d.repo.DeleteMeta(ctx, user.ID, resetKeyMetaKey); err != nil {
		return nil, err
	}

	return NewIdentityFromUser(user), nil
}

func (d *HostDirectory) CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error) {
	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	displayName := input.Login
	if input.FirstName != "" {
		displayName = input.FirstName
		if input.LastName != "" {
			displayName += " " + input.LastName
		}
	}

	user, err := d.repo.Create(ctx, &User{
		UserLogin:    input.Login,
		Email:        input.Email,
		DisplayName:  displayName,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	return NewIdentityFromUser(user), nil
}

// GetAttribute returns the decoded attribute value, or nil when absent.
func (d *HostDirectory) GetAttribute(ctx context.Context, userID int64, key string) (any, error) {
	raw, err := d.repo.GetMeta(ctx, userID, key)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode user attribute")
	}

	return value, nil
}

func (d *HostDirectory) SetAttribute(ctx context.Context, userID int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode user attribute")
	}
	return d.repo.SetMeta(ctx, userID, key, raw)
}
