package wallet

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const defaultName = "My Wallet"

var (
	ErrNotFound           = errors.New("wallet not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidKeyMaterial = errors.New("invalid private key")
)

// Wallet is a custodial TRON account owned by exactly one user.
type Wallet struct {
	ID         string
	OwnerID    string
	Name       string
	Address    string
	PrivateKey string
	HexAddress string
	IsUsed     bool
	CreatedAt  time.Time
}

// Balances holds the on-chain balances of an address in whole units.
type Balances struct {
	Address   string
	TRX       decimal.Decimal
	USDT      decimal.Decimal
	UpdatedAt time.Time
}

// Contact is the cosmetic account detail returned alongside a new wallet.
type Contact struct {
	Gmail    string
	Phone    string
	Password string
}

// ContactGenerator produces Contact values for wallet creation responses.
type ContactGenerator interface {
	Contact() Contact
}
