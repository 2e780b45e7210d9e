package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yusufkecer/ecommerce-password-reset/internal/domain"
)

// --- in-memory account store ---

type memoryStore struct {
	collection domain.Collection

	mu        sync.Mutex
	accounts  map[string]domain.Account
	updates   int
	findErr   error
	updateErr error
}

func newMemoryStore(c domain.Collection, accounts ...domain.Account) *memoryStore {
	s := &memoryStore{collection: c, accounts: make(map[string]domain.Account)}
	for _, a := range accounts {
		s.accounts[a.Email] = a
	}
	return s
}

func (s *memoryStore) Collection() domain.Collection { return s.collection }

func (s *memoryStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	a, ok := s.accounts[email]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *memoryStore) UpdateCredential(ctx context.Context, email, hash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	a, ok := s.accounts[email]
	if !ok {
		return nil
	}
	a.PasswordHash = hash
	a.PasswordExpiry = &expiresAt
	s.accounts[email] = a
	s.updates++
	return nil
}

func (s *memoryStore) get(email string) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[email]
}

type memoryDirectory struct {
	stores  []domain.AccountStore
	openErr error

	mu     sync.Mutex
	opens  int
	closes int
}

func newMemoryDirectory(stores ...domain.AccountStore) *memoryDirectory {
	return &memoryDirectory{stores: stores}
}

func (d *memoryDirectory) Open(ctx context.Context) (domain.AccountSession, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.mu.Lock()
	d.opens++
	d.mu.Unlock()
	return &memorySession{dir: d}, nil
}

type memorySession struct{ dir *memoryDirectory }

func (s *memorySession) Stores() []domain.AccountStore { return s.dir.stores }

func (s *memorySession) Close() error {
	s.dir.mu.Lock()
	defer s.dir.mu.Unlock()
	s.dir.closes++
	return nil
}

// --- recording mailer ---

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// --- mocks ---

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }
