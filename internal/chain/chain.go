// Package chain defines the contract between the wallet service and a
// blockchain node. Implementations live in sub-packages.
package chain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidKey     = errors.New("malformed private key")
	ErrInvalidAddress = errors.New("invalid address")
	ErrBroadcast      = errors.New("broadcast rejected")
)

// Asset identifies a transferable token.
type Asset string

const (
	AssetTRX  Asset = "TRX"
	AssetUSDT Asset = "USDT"
)

// Account is a keypair with its encoded addresses.
type Account struct {
	Address    string
	HexAddress string
	PrivateKey string
}

// TransferRequest describes a value transfer signed with PrivateKey.
// Amount is in whole units (TRX or USDT), not sun.
type TransferRequest struct {
	From       string
	To         string
	Amount     decimal.Decimal
	Asset      Asset
	PrivateKey string
}

// Transaction is a single entry of an address history.
type Transaction struct {
	ID          string          `json:"tx_id"`
	Type        string          `json:"type"`
	From        string          `json:"from,omitempty"`
	To          string          `json:"to,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Asset       Asset           `json:"asset,omitempty"`
	Status      string          `json:"status,omitempty"`
	BlockNumber int64           `json:"block_number"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Client is the blockchain surface used by the wallet service.
type Client interface {
	NewAccount(ctx context.Context) (Account, error)
	AccountFromKey(privateKey string) (Account, error)
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
	TokenBalance(ctx context.Context, address string) (decimal.Decimal, error)
	Transfer(ctx context.Context, req TransferRequest) (string, error)
	Transactions(ctx context.Context, address string, limit int) ([]Transaction, error)
	ValidateAddress(address string) error
}
