package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/yusufkecer/ecommerce-password-reset/internal/domain"
)

// Querier is satisfied by *sqlx.DB, *sqlx.Conn and *sqlx.Tx.
type Querier interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// AccountRepository serves one account collection. Buyers and sellers use
// the same repository bound to a different table.
type AccountRepository struct {
	q          Querier
	collection domain.Collection
	findSQL    string
	updateSQL  string
}

// NewAccountRepository panics on an unknown collection, since the table name
// is interpolated into the statements.
func NewAccountRepository(q Querier, collection domain.Collection) *AccountRepository {
	if !collection.Valid() {
		panic(fmt.Sprintf("repository: unknown account collection %q", collection))
	}
	return &AccountRepository{
		q:          q,
		collection: collection,
		findSQL: `SELECT email, first_name, last_name, COALESCE(password, '') AS password, password_expiry
			FROM ` + collection.String() + ` WHERE email = ? LIMIT 1`,
		updateSQL: `UPDATE ` + collection.String() + ` SET password = ?, password_expiry = ? WHERE email = ?`,
	}
}

func (r *AccountRepository) Collection() domain.Collection {
	return r.collection
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := sqlx.GetContext(ctx, r.q, &account, r.findSQL, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s account: %w", r.collection, err)
	}
	return &account, nil
}

// UpdateCredential writes the hash and its expiry in a single statement so a
// row never holds one without the other.
func (r *AccountRepository) UpdateCredential(ctx context.Context, email, passwordHash string, expiresAt time.Time) error {
	_, err := r.q.ExecContext(ctx, r.updateSQL, passwordHash, expiresAt, email)
	if err != nil {
		return fmt.Errorf("failed to update %s credential: %w", r.collection, err)
	}
	return nil
}
