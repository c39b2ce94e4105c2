package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tron-wallet/tron_wallet/internal/chain"
)

// Service manages custodial wallets. Every per-wallet operation resolves
// the record first and then checks ownership, so a missing wallet reports
// ErrNotFound even to a caller who could never own it.
type Service struct {
	repo   Repository
	chain  chain.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds a wallet service instance.
func NewService(repo Repository, chainClient chain.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, chain: chainClient, logger: logger, now: time.Now}
}

// Create generates a new keypair and stores it for the owner.
func (s *Service) Create(ctx context.Context, ownerID, name string) (Wallet, error) {
	acc, err := s.chain.NewAccount(ctx)
	if err != nil {
		return Wallet{}, fmt.Errorf("generate account: %w", err)
	}
	return s.store(ctx, ownerID, name, acc)
}

// Import stores an existing private key. Nothing is written when the key
// cannot be parsed.
func (s *Service) Import(ctx context.Context, ownerID, name, privateKey string) (Wallet, error) {
	acc, err := s.chain.AccountFromKey(privateKey)
	if err != nil {
		return Wallet{}, fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, err)
	}
	return s.store(ctx, ownerID, name, acc)
}

func (s *Service) store(ctx context.Context, ownerID, name string, acc chain.Account) (Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}
	w := Wallet{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       name,
		Address:    acc.Address,
		PrivateKey: acc.PrivateKey,
		HexAddress: acc.HexAddress,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return Wallet{}, err
	}
	s.logger.Info("wallet stored",
		slog.String("wallet_id", w.ID),
		slog.String("user_id", ownerID),
		slog.String("address", w.Address))
	return w, nil
}

// List returns the owner's wallets, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Wallet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns a wallet the caller owns.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Wallet, error) {
	return s.owned(ctx, ownerID, id)
}

// Export returns the wallet including key material.
func (s *Service) Export(ctx context.Context, ownerID, id string) (Wallet, error) {
	w, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return Wallet{}, err
	}
	s.logger.Warn("private key exported", slog.String("wallet_id", id), slog.String("user_id", ownerID))
	return w, nil
}

// Delete removes a wallet the caller owns.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// MarkUsed sets the used flag on a wallet the caller owns.
func (s *Service) MarkUsed(ctx context.Context, ownerID, id string, used bool) (Wallet, error) {
	w, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return Wallet{}, err
	}
	if err := s.repo.SetUsed(ctx, id, used); err != nil {
		return Wallet{}, err
	}
	w.IsUsed = used
	return w, nil
}

// ResolveOwned finds the owner's wallet holding address.
func (s *Service) ResolveOwned(ctx context.Context, ownerID, address string) (Wallet, error) {
	return s.repo.FindByOwnerAndAddress(ctx, ownerID, address)
}

// Balances reads TRX and USDT balances for any address. A failed token
// lookup reports zero USDT.
func (s *Service) Balances(ctx context.Context, address string) (Balances, error) {
	trx, err := s.chain.Balance(ctx, address)
	if err != nil {
		return Balances{}, err
	}
	usdt, err := s.chain.TokenBalance(ctx, address)
	if err != nil {
		s.logger.Warn("usdt balance lookup failed", slog.String("address", address), slog.String("error", err.Error()))
		usdt = decimal.Zero
	}
	return Balances{Address: address, TRX: trx, USDT: usdt, UpdatedAt: s.now().UTC()}, nil
}

// Transactions returns recent history for any address.
func (s *Service) Transactions(ctx context.Context, address string, limit int) ([]chain.Transaction, error) {
	return s.chain.Transactions(ctx, address, limit)
}

func (s *Service) owned(ctx context.Context, ownerID, id string) (Wallet, error) {
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		return Wallet{}, err
	}
	if w.OwnerID != ownerID {
		return Wallet{}, ErrAccessDenied
	}
	return w, nil
}
