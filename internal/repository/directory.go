package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/yusufkecer/ecommerce-password-reset/internal/domain"
)

// Directory hands out per-request sessions, each pinned to one pooled
// connection.
type Directory struct {
	db *sqlx.DB
}

func NewDirectory(db *sqlx.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) Open(ctx context.Context) (domain.AccountSession, error) {
	conn, err := d.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	stores := make([]domain.AccountStore, 0, len(domain.LookupOrder))
	for _, c := range domain.LookupOrder {
		stores = append(stores, NewAccountRepository(conn, c))
	}
	return &Session{conn: conn, stores: stores}, nil
}

type Session struct {
	conn   *sqlx.Conn
	stores []domain.AccountStore
}

func (s *Session) Stores() []domain.AccountStore {
	return s.stores
}

// Close returns the connection to the pool.
func (s *Session) Close() error {
	return s.conn.Close()
}
