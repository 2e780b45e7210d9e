package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yusufkecer/ecommerce-password-reset/internal/credential"
	"github.com/yusufkecer/ecommerce-password-reset/internal/domain"
	"github.com/yusufkecer/ecommerce-password-reset/internal/metrics"
	"github.com/yusufkecer/ecommerce-password-reset/internal/validate"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type ResetOptions struct {
	TTL    time.Duration
	Length int
	Sender string
}

// PasswordResetService issues temporary passwords for buyer and seller
// accounts and mails them to the owner.
type PasswordResetService struct {
	accounts domain.AccountDirectory
	mailer   Mailer
	hasher   PasswordHasher
	ttl      time.Duration
	length   int
	sender   string
	generate func(n int) (string, error)
	now      func() time.Time
}

func NewPasswordResetService(
	accounts domain.AccountDirectory,
	mailer Mailer,
	hasher PasswordHasher,
	opts ResetOptions,
) *PasswordResetService {
	return &PasswordResetService{
		accounts: accounts,
		mailer:   mailer,
		hasher:   hasher,
		ttl:      opts.TTL,
		length:   opts.Length,
		sender:   opts.Sender,
		generate: credential.Generate,
		now:      time.Now,
	}
}

// ForgotPassword looks email up in every collection in domain.LookupOrder and
// issues a temporary password for the first match. The new hash is persisted
// before the mail is sent and is not reverted if sending fails. Cancellation
// of ctx is ignored once the call starts; its values are kept.
func (s *PasswordResetService) ForgotPassword(ctx context.Context, email string) (*domain.IssuedCredential, error) {
	ctx = context.WithoutCancel(ctx)
	req := domain.ForgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := validate.Struct(&req); err != nil {
		return nil, domain.NewValidationError(domain.MsgEmailRequired)
	}

	session, err := s.accounts.Open(ctx)
	if err != nil {
		return nil, domain.NewInfrastructureError("open account session", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Msg("failed to release account session")
		}
	}()

	for _, store := range session.Stores() {
		account, err := store.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, domain.NewInfrastructureError("find account", err)
		}
		if account == nil {
			continue
		}
		return s.issueTemporaryCredential(ctx, store, req.Email, account)
	}

	return nil, domain.NewNotFoundError(domain.MsgEmailNotRegistered)
}

func (s *PasswordResetService) issueTemporaryCredential(
	ctx context.Context,
	store domain.AccountStore,
	email string,
	account *domain.Account,
) (*domain.IssuedCredential, error) {
	plaintext, err := s.generate(s.length)
	if err != nil {
		return nil, domain.NewInfrastructureError("generate temporary password", err)
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, domain.NewInfrastructureError("hash temporary password", err)
	}

	expiresAt := s.now().Add(s.ttl)
	if err := store.UpdateCredential(ctx, email, hash, expiresAt); err != nil {
		return nil, domain.NewInfrastructureError("store temporary password", err)
	}
	metrics.RecordIssued(store.Collection().String())

	msg := ComposeResetMessage(account, email, plaintext, s.ttl, s.sender)
	start := time.Now()
	err = s.mailer.Send(ctx, msg)
	metrics.RecordMailSend(start, err)
	if err != nil {
		return nil, domain.NewInfrastructureError("send reset mail", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("collection", store.Collection().String()).
		Str("email", email).
		Time("expires_at", expiresAt).
		Msg("temporary password issued")

	return &domain.IssuedCredential{
		Collection: store.Collection(),
		Email:      email,
		Plaintext:  plaintext,
		Hash:       hash,
		ExpiresAt:  expiresAt,
	}, nil
}
