package demo

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/tron-wallet/tron_wallet/internal/chain"
	"github.com/tron-wallet/tron_wallet/internal/wallet"
)

const passwordLength = 8

var (
	trxRange  = [2]float64{10, 5000}
	usdtRange = [2]float64{100, 10000}
)

// Generator fabricates demo profiles and cosmetic wallet contacts.
type Generator struct {
	mu      sync.Mutex
	faker   *gofakeit.Faker
	entropy *ulid.MonotonicEntropy
	chain   chain.Client
	now     func() time.Time
}

var _ wallet.ContactGenerator = (*Generator)(nil)

// NewGenerator builds a generator seeded from crypto/rand.
func NewGenerator(chainClient chain.Client) *Generator {
	return newGenerator(gofakeit.NewCrypto(), chainClient)
}

func newGenerator(faker *gofakeit.Faker, chainClient chain.Client) *Generator {
	return &Generator{
		faker:   faker,
		entropy: ulid.Monotonic(rand.Reader, 0),
		chain:   chainClient,
		now:     time.Now,
	}
}

// Contact returns a fake gmail address, phone number and password.
func (g *Generator) Contact() wallet.Contact {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.contactLocked()
}

func (g *Generator) contactLocked() wallet.Contact {
	return wallet.Contact{
		Gmail:    g.faker.Username() + "@gmail.com",
		Phone:    g.faker.PhoneFormatted(),
		Password: g.faker.Password(true, true, true, true, false, passwordLength),
	}
}

// Profile fabricates a demo profile around a freshly generated address.
func (g *Generator) Profile(ctx context.Context) (Profile, error) {
	acc, err := g.chain.NewAccount(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("generate demo address: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC()
	contact := g.contactLocked()
	id, err := ulid.New(ulid.Timestamp(now), g.entropy)
	if err != nil {
		return Profile{}, fmt.Errorf("generate demo id: %w", err)
	}

	return Profile{
		ID:            id.String(),
		Phone:         contact.Phone,
		Email:         contact.Gmail,
		Password:      contact.Password,
		WalletAddress: acc.Address,
		BalanceTRX:    decimal.NewFromFloat(g.faker.Float64Range(trxRange[0], trxRange[1])).Round(2),
		BalanceUSDT:   decimal.NewFromFloat(g.faker.Float64Range(usdtRange[0], usdtRange[1])).Round(2),
		CreatedAt:     now,
	}, nil
}
