package domain

import (
	"context"
	"strings"
	"time"
)

// Collection names the table an account lives in. Buyers and sellers share
// one row shape but are stored separately.
type Collection string

const (
	Buyers  Collection = "users"
	Sellers Collection = "sellers"
)

// LookupOrder is the order collections are searched in. The first match wins.
var LookupOrder = []Collection{Buyers, Sellers}

func (c Collection) Valid() bool {
	return c == Buyers || c == Sellers
}

func (c Collection) String() string {
	return string(c)
}

type Account struct {
	Email          string     `db:"email"`
	FirstName      *string    `db:"first_name"`
	LastName       *string    `db:"last_name"`
	PasswordHash   string     `db:"password"`
	PasswordExpiry *time.Time `db:"password_expiry"`
}

// DisplayName joins the first and last name, falling back to "User" when
// both are blank or NULL.
func (a *Account) DisplayName() string {
	var first, last string
	if a.FirstName != nil {
		first = *a.FirstName
	}
	if a.LastName != nil {
		last = *a.LastName
	}
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return "User"
	}
	return name
}

// AccountStore reads and writes accounts of a single collection.
type AccountStore interface {
	Collection() Collection
	FindByEmail(ctx context.Context, email string) (*Account, error)
	UpdateCredential(ctx context.Context, email, passwordHash string, expiresAt time.Time) error
}

// AccountSession binds the stores of every collection to one store
// connection. Close must be called on every exit path.
type AccountSession interface {
	Stores() []AccountStore
	Close() error
}

type AccountDirectory interface {
	Open(ctx context.Context) (AccountSession, error)
}
