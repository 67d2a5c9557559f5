package hostauth

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/mail"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the persistence surface for host user rows and their metadata.
type Users interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)

	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)

	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	UpdatePasswordHashTx(ctx context.Context, tx bun.IDB, id int64, passwordHash string) error

	GetMeta(ctx context.Context, userID int64, key string) (json.RawMessage, error)
	SetMeta(ctx context.Context, userID int64, key string, value json.RawMessage) error
	DeleteMeta(ctx context.Context, userID int64, key string) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns a Users repository backed by the given database.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (a *users) GetByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("usr.id = ?", id).
		Limit(1).
		Scan(ctx)
	return a.one(record, err)
}

func (a *users) GetByLogin(ctx context.Context, login string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("lower(usr.user_login) = lower(?)", login).
		Limit(1).
		Scan(ctx)
	return a.one(record, err)
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("lower(usr.user_email) = lower(?)", email).
		Limit(1).
		Scan(ctx)
	return a.one(record, err)
}

// GetByIdentifier looks a user up by email when the identifier parses as an
// address, by login otherwise.
func (a *users) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	identifier = strings.TrimSpace(identifier)
	if _, err := mail.ParseAddress(identifier); err == nil {
		return a.GetByEmail(ctx, identifier)
	}
	return a.GetByLogin(ctx, identifier)
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if _, err := tx.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
	}
	return record, nil
}

func (a *users) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	return a.UpdatePasswordHashTx(ctx, a.db, id, passwordHash)
}

func (a *users) UpdatePasswordHashTx(ctx context.Context, tx bun.IDB, id int64, passwordHash string) error {
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("user_pass = ?", passwordHash).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update password hash")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrIdentityNotFound
	}

	return nil
}

func (a *users) GetMeta(ctx context.Context, userID int64, key string) (json.RawMessage, error) {
	record := &UserMeta{}
	err := a.db.NewSelect().
		Model(record).
		Where("um.user_id = ? AND um.meta_key = ?", userID, key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user meta")
	}
	return record.Value, nil
}

func (a *users) SetMeta(ctx context.Context, userID int64, key string, value json.RawMessage) error {
	record := &UserMeta{
		UserID: userID,
		Key:    key,
		Value:  value,
	}
	_, err := a.db.NewInsert().
		Model(record).
		On("CONFLICT (user_id, meta_key) DO UPDATE").
		Set("meta_value = EXCLUDED.meta_value").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store user meta")
	}
	return nil
}

func (a *users) DeleteMeta(ctx context.Context, userID int64, key string) error {
	_, err := a.db.NewDelete().
		Model((*UserMeta)(nil)).
		Where("user_id = ? AND meta_key = ?", userID, key).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user meta")
	}
	return nil
}

func (a *users) one(record *User, err error) (*User, error) {
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user")
	}
	return record, nil
}
