package accounts

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// Users is the persistence contract the authentication core depends on.
// Every call opens and releases its own connection-scoped resources; failed
// calls surface to the caller, who decides whether to retry.
type Users interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)

	// Create rejects passwords failing the policy, hashes before persisting,
	// assigns a fresh id, and forces is_active=false, role_id=1. The raw
	// password is never stored.
	Create(ctx context.Context, record *User, password string) (*User, error)

	// Update persists username, email, updated_at, last_login, is_active,
	// first/last name, and role_id. It never alters password_hash.
	Update(ctx context.Context, record *User) (*User, error)

	Delete(ctx context.Context, id string) error

	// Authenticate verifies the credentials and returns the matching user,
	// refreshing last_login best-effort. Missing user, empty stored hash,
	// and wrong password all return ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

type users struct {
	db     *bun.DB
	logger Logger
}

var _ Users = (*users)(nil)

type UsersOption func(*users)

func WithUsersLogger(logger Logger) UsersOption {
	return func(u *users) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUsersRepository returns a Users store backed by the given bun database.
func NewUsersRepository(db *bun.DB, opts ...UsersOption) Users {
	repo := &users{
		db:     db,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}
	return repo
}

func (a *users) GetByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	record := &User{}
	err = a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", uid).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user by id")
	}

	return record, nil
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user by username")
	}

	return record, nil
}

func (a *users) List(ctx context.Context) ([]*User, error) {
	var records []*User
	err := a.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}
	return records, nil
}

func (a *users) Create(ctx context.Context, record *User, password string) (*User, error) {
	if record == nil {
		return nil, errors.New("user must not be nil", errors.CategoryBadInput)
	}

	// Policy violations abort here, before any write.
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record.ID = uuid.New()
	record.PasswordHash = hash
	record.CreatedAt = now
	record.UpdatedAt = now
	record.LastLogin = &now
	// New accounts always start non-active with the User role, regardless of
	// what the caller set.
	record.IsActive = false
	record.RoleID = RoleUser.ID()

	if _, err := a.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user")
	}

	return record, nil
}

func (a *users) Update(ctx context.Context, record *User) (*User, error) {
	if record == nil {
		return nil, errors.New("user must not be nil", errors.CategoryBadInput)
	}

	record.UpdatedAt = time.Now().UTC()

	res, err := a.db.NewUpdate().
		Model(record).
		Column("username", "email", "updated_at", "last_login", "is_active", "first_name", "last_name", "role_id").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not update user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrUserNotFound
	}

	return record, nil
}

func (a *users) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrUserNotFound
	}

	res, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", uid).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not delete user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (a *users) Authenticate(ctx context.Context, username, password string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Burn a comparison so the missing-user path costs one bcrypt
			// verification like the wrong-password path.
			ComparePasswordAndHash(password, timingEqualizerHash())
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	if record.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, record.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	_, err = a.db.NewUpdate().
		Model((*User)(nil)).
		Set("last_login = ?", now).
		Where("id = ?", record.ID).
		Exec(ctx)
	if err != nil {
		// Best effort: a failed last_login touch must not fail the login.
		a.logger.Error("failed to update last_login", "user_id", record.ID.String(), "error", err)
	} else {
		record.LastLogin = &now
	}

	return record, nil
}

var timingEqualizerHash = sync.OnceValue(func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), PasswordHashCost)
	if err != nil {
		return ""
	}
	return string(h)
})
