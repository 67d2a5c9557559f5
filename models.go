package hostauth

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// User is the host user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	UserLogin     string     `bun:"user_login,notnull,unique" json:"login,omitempty"`
	Email         string     `bun:"user_email,notnull,unique" json:"email,omitempty"`
	DisplayName   string     `bun:"display_name" json:"displayName,omitempty"`
	FirstName     string     `bun:"first_name" json:"firstName,omitempty"`
	LastName      string     `bun:"last_name" json:"lastName,omitempty"`
	PasswordHash  string     `bun:"user_pass" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserMeta is a single user attribute row. Values are stored as JSON so the
// same table can back anything from a string flag to the refresh session list.
type UserMeta struct {
	bun.BaseModel `bun:"table:usermeta,alias:um"`
	ID            int64           `bun:"id,pk,autoincrement" json:"id,omitempty"`
	UserID        int64           `bun:"user_id,notnull,unique:usermeta_user_key" json:"user_id,omitempty"`
	Key           string          `bun:"meta_key,notnull,unique:usermeta_user_key" json:"meta_key,omitempty"`
	Value         json.RawMessage `bun:"meta_value,type:jsonb" json:"meta_value,omitempty"`
}
