// Package tron implements chain.Client against a TRON full node over gRPC,
// with TronGrid REST for address history.
package tron

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/fbsobreira/gotron-sdk/pkg/address"
	"github.com/fbsobreira/gotron-sdk/pkg/client"
	"github.com/fbsobreira/gotron-sdk/pkg/proto/api"
	"github.com/fbsobreira/gotron-sdk/pkg/proto/core"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/tron-wallet/tron_wallet/internal/chain"
)

type endpoint struct {
	grpcURL string
	httpURL string
	usdt    string
}

var networks = map[string]endpoint{
	"mainnet": {grpcURL: "grpc.trongrid.io:50051", httpURL: "https://api.trongrid.io", usdt: "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"},
	"shasta":  {grpcURL: "grpc.shasta.trongrid.io:50051", httpURL: "https://api.shasta.trongrid.io", usdt: "TG3XXyExBkPp9nzdajDZsozEu4BkaSJozs"},
	"nile":    {grpcURL: "grpc.nile.trongrid.io:50051", httpURL: "https://api.nile.trongrid.io", usdt: "TXLAQ63Xg1NAzckPwKHvzw7CSEmLMEqcdj"},
}

// node is the subset of the gotron gRPC client used here.
type node interface {
	GetAccount(addr string) (*core.Account, error)
	TRC20ContractBalance(addr, contractAddress string) (*big.Int, error)
	Transfer(from, toAddress string, amount int64) (*api.TransactionExtention, error)
	TRC20Send(from, to, contract string, amount *big.Int, feeLimit int64) (*api.TransactionExtention, error)
	Broadcast(tx *core.Transaction) (*api.Return, error)
	Stop()
}

// Options selects the network and credentials.
type Options struct {
	Network      string
	APIKey       string
	USDTContract string // overrides the network default when set
}

// Client talks to a TRON node.
type Client struct {
	node    node
	history *historyClient
	usdt    string
	network string
	logger  *slog.Logger
}

var _ chain.Client = (*Client)(nil)

// New dials the network's gRPC endpoint.
func New(opts Options, logger *slog.Logger) (*Client, error) {
	ep, ok := networks[opts.Network]
	if !ok {
		return nil, fmt.Errorf("unsupported network: %s", opts.Network)
	}
	if opts.Network == "mainnet" {
		logger.Warn("mainnet active, transfers move real funds")
	}

	grpcClient := client.NewGrpcClient(ep.grpcURL)
	if opts.APIKey != "" {
		grpcClient.SetAPIKey(opts.APIKey)
	}
	if err := grpcClient.Start(grpc.WithTransportCredentials(insecure.NewCredentials())); err != nil {
		return nil, fmt.Errorf("start tron grpc client: %w", err)
	}

	usdt := ep.usdt
	if opts.USDTContract != "" {
		usdt = opts.USDTContract
	}

	logger.Info("tron client initialised",
		slog.String("network", opts.Network),
		slog.String("grpc_url", ep.grpcURL),
		slog.String("http_url", ep.httpURL),
		slog.String("usdt_contract", usdt))

	return newClient(grpcClient, newHistoryClient(ep.httpURL, opts.APIKey, logger), usdt, opts.Network, logger), nil
}

func newClient(n node, history *historyClient, usdt, network string, logger *slog.Logger) *Client {
	return &Client{node: n, history: history, usdt: usdt, network: network, logger: logger}
}

// Stop closes the gRPC connection.
func (c *Client) Stop() {
	if c.node != nil {
		c.node.Stop()
		c.logger.Info("tron grpc client stopped")
	}
}

// ValidateAddress checks the base58check encoding of a TRON address.
func (c *Client) ValidateAddress(addr string) error {
	if len(addr) != 34 || !strings.HasPrefix(addr, "T") {
		return fmt.Errorf("%w: %q", chain.ErrInvalidAddress, addr)
	}
	if _, err := address.Base58ToAddress(addr); err != nil {
		return fmt.Errorf("%w: %v", chain.ErrInvalidAddress, err)
	}
	return nil
}

// Balance returns the TRX balance. Accounts never seen on chain report zero.
func (c *Client) Balance(ctx context.Context, addr string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	if err := c.ValidateAddress(addr); err != nil {
		return decimal.Zero, err
	}
	acc, err := c.node.GetAccount(addr)
	if err != nil {
		if strings.Contains(err.Error(), "account not found") {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("get account: %w", err)
	}
	return chain.FromSun(acc.GetBalance()), nil
}

// TokenBalance returns the USDT-TRC20 balance.
func (c *Client) TokenBalance(ctx context.Context, addr string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	if err := c.ValidateAddress(addr); err != nil {
		return decimal.Zero, err
	}
	bal, err := c.node.TRC20ContractBalance(addr, c.usdt)
	if err != nil {
		return decimal.Zero, fmt.Errorf("trc20 balance: %w", err)
	}
	return chain.FromSunBig(bal), nil
}

// Transactions returns recent history for addr, newest first.
func (c *Client) Transactions(ctx context.Context, addr string, limit int) ([]chain.Transaction, error) {
	if err := c.ValidateAddress(addr); err != nil {
		return nil, err
	}
	return c.history.accountTransactions(ctx, addr, limit, c.usdt)
}
