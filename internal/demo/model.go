package demo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is a synthetic, ownerless account used for demonstrations.
type Profile struct {
	ID            string
	Phone         string
	Email         string
	Password      string
	WalletAddress string
	BalanceTRX    decimal.Decimal
	BalanceUSDT   decimal.Decimal
	CreatedAt     time.Time
}
