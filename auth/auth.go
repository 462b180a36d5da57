/*
Package auth validates credentials against the persisted users table.

PURPOSE:
  A thin gate in front of the engine: the presentation layer must hold
  a Session before issuing mutations. Passwords are stored as bcrypt
  hashes (the salt is embedded in the hash).

FIRST RUN:
  An empty users table is seeded with one administrator account using a
  fixed default password. That default is a known weakness inherited
  from the reference system; deployments should change it immediately
  (the server config can override it at seed time).

SEE ALSO:
  - tabular/store.go: the store the users table lives in
*/
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/godsarin/InventoryManagement/tabular"
)

// UsersSchema describes the persisted users table.
var UsersSchema = tabular.Schema{
	Name: "users",
	Columns: []tabular.Column{
		{Name: "Username", Type: tabular.ColumnString},
		{Name: "Password", Type: tabular.ColumnString}, // bcrypt hash
		{Name: "Role", Type: tabular.ColumnString},
	},
}

// Role is a user's access level.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

// Default administrator seeded into an empty users table.
const (
	DefaultAdminUser     = "admin"
	DefaultAdminPassword = "admin123"
)

var (
	// ErrInvalidCredentials is returned for a bad username or password.
	// Deliberately does not say which.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserExists is returned when creating a user whose name is taken.
	ErrUserExists = errors.New("username already exists")
)

// User is one credential record.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
}

// Session is the explicit login context handed to the presentation
// layer on successful authentication. There is no process-wide
// "current user"; callers pass the session around.
type Session struct {
	ID       string
	Username string
	Role     Role
	IssuedAt time.Time
}

// Gate validates credentials against the users table.
type Gate struct {
	store tabular.Store
}

// NewGate creates a gate backed by the given store.
func NewGate(store tabular.Store) *Gate {
	return &Gate{store: store}
}

func (g *Gate) load(ctx context.Context) ([]User, error) {
	rows, err := g.store.Load(ctx, UsersSchema)
	if err != nil {
		return nil, err
	}
	users := make([]User, len(rows))
	for i, r := range rows {
		users[i] = User{
			Username:     r.String("Username"),
			PasswordHash: r.String("Password"),
			Role:         Role(r.String("Role")),
		}
	}
	return users, nil
}

func (g *Gate) save(ctx context.Context, users []User) error {
	rows := make([]tabular.Row, len(users))
	for i, u := range users {
		rows[i] = tabular.Row{
			"Username": u.Username,
			"Password": u.PasswordHash,
			"Role":     string(u.Role),
		}
	}
	return g.store.Save(ctx, UsersSchema, rows)
}

// EnsureDefaultAdmin seeds the default administrator if the users table
// is empty. Pass "" to use the (weak) built-in default password.
func (g *Gate) EnsureDefaultAdmin(ctx context.Context, password string) error {
	users, err := g.load(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	if password == "" {
		password = DefaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return g.save(ctx, []User{{
		Username:     DefaultAdminUser,
		PasswordHash: string(hash),
		Role:         RoleAdmin,
	}})
}

// CreateUser adds a credential record with a freshly hashed password.
func (g *Gate) CreateUser(ctx context.Context, username, password string, role Role) error {
	users, err := g.load(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == username {
			return ErrUserExists
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return g.save(ctx, append(users, User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}))
}

// Login checks the credentials and returns a new Session on success.
func (g *Gate) Login(ctx context.Context, username, password string) (Session, error) {
	users, err := g.load(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return Session{}, ErrInvalidCredentials
		}
		return Session{
			ID:       uuid.NewString(),
			Username: u.Username,
			Role:     u.Role,
			IssuedAt: time.Now(),
		}, nil
	}
	return Session{}, ErrInvalidCredentials
}
