package accounts

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persisted account record. The password hash never appears in
// JSON output; the cleartext password exists only transiently inside
// Create and Authenticate calls.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid" json:"id,omitempty"`
	Username     string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email        string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash string     `bun:"password_hash" json:"-"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"created_at,omitempty"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull" json:"updated_at,omitempty"`
	LastLogin    *time.Time `bun:"last_login,nullzero" json:"last_login,omitempty"`
	IsActive     bool       `bun:"is_active" json:"is_active"`
	FirstName    string     `bun:"first_name" json:"first_name,omitempty"`
	LastName     string     `bun:"last_name" json:"last_name,omitempty"`
	RoleID       int        `bun:"role_id,notnull" json:"role_id,omitempty"`
}

// Role derives the named role from the stored role code.
func (u *User) Role() Role {
	return RoleFromID(u.RoleID)
}

// FullName joins first and last name, either of which may be empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
