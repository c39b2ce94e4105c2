// Package chaintest provides an in-memory chain.Client for tests.
package chaintest

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tron-wallet/tron_wallet/internal/chain"
)

// Fake is a deterministic chain.Client. Addresses it hands out start with
// "T" and are 34 characters long.
type Fake struct {
	mu  sync.Mutex
	seq int

	Balances      map[string]decimal.Decimal
	TokenBalances map[string]decimal.Decimal
	History       map[string][]chain.Transaction
	BalanceErr    error
	TokenErr      error
	TransferErr   error
	Transfers     []chain.TransferRequest
}

var _ chain.Client = (*Fake)(nil)

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		Balances:      make(map[string]decimal.Decimal),
		TokenBalances: make(map[string]decimal.Decimal),
		History:       make(map[string][]chain.Transaction),
	}
}

func (f *Fake) NewAccount(context.Context) (chain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	key := fmt.Sprintf("%064x", f.seq)
	return accountFor(key), nil
}

func (f *Fake) AccountFromKey(privateKey string) (chain.Account, error) {
	key := strings.TrimPrefix(privateKey, "0x")
	raw, err := hex.DecodeString(key)
	if err != nil || len(raw) != 32 {
		return chain.Account{}, fmt.Errorf("%w: expected 32 hex-encoded bytes", chain.ErrInvalidKey)
	}
	return accountFor(strings.ToLower(key)), nil
}

func accountFor(key string) chain.Account {
	return chain.Account{
		Address:    "TKey" + key[len(key)-30:],
		HexAddress: "41" + key[len(key)-40:],
		PrivateKey: key,
	}
}

func (f *Fake) Balance(_ context.Context, address string) (decimal.Decimal, error) {
	if err := f.ValidateAddress(address); err != nil {
		return decimal.Zero, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BalanceErr != nil {
		return decimal.Zero, f.BalanceErr
	}
	return f.Balances[address], nil
}

func (f *Fake) TokenBalance(_ context.Context, address string) (decimal.Decimal, error) {
	if err := f.ValidateAddress(address); err != nil {
		return decimal.Zero, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.TokenErr != nil {
		return decimal.Zero, f.TokenErr
	}
	return f.TokenBalances[address], nil
}

// Transfer records the request and returns a sequential transaction id.
func (f *Fake) Transfer(_ context.Context, req chain.TransferRequest) (string, error) {
	if err := f.ValidateAddress(req.From); err != nil {
		return "", err
	}
	if err := f.ValidateAddress(req.To); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.TransferErr != nil {
		return "", f.TransferErr
	}
	f.Transfers = append(f.Transfers, req)
	return fmt.Sprintf("%064x", len(f.Transfers)), nil
}

func (f *Fake) Transactions(_ context.Context, address string, limit int) ([]chain.Transaction, error) {
	if err := f.ValidateAddress(address); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	txs := f.History[address]
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	out := make([]chain.Transaction, len(txs))
	copy(out, txs)
	return out, nil
}

func (f *Fake) ValidateAddress(address string) error {
	if len(address) != 34 || !strings.HasPrefix(address, "T") {
		return fmt.Errorf("%w: %q", chain.ErrInvalidAddress, address)
	}
	return nil
}

// TransferCount reports how many transfers were accepted.
func (f *Fake) TransferCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Transfers)
}
