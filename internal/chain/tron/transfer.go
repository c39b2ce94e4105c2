package tron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/fbsobreira/gotron-sdk/pkg/proto/api"

	"github.com/tron-wallet/tron_wallet/internal/chain"
)

const (
	transferMemo = "TRON Wallet Transaction"
	// trc20FeeLimit caps the energy a TRC20 transfer may burn, in sun (100 TRX).
	trc20FeeLimit int64 = 100_000_000
)

// Transfer builds, signs and broadcasts a TRX or USDT-TRC20 transfer and
// returns the transaction id.
func (c *Client) Transfer(ctx context.Context, req chain.TransferRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := c.ValidateAddress(req.From); err != nil {
		return "", fmt.Errorf("from: %w", err)
	}
	if err := c.ValidateAddress(req.To); err != nil {
		return "", fmt.Errorf("to: %w", err)
	}
	amount, err := chain.ToSun(req.Amount)
	if err != nil {
		return "", err
	}
	if amount <= 0 {
		return "", fmt.Errorf("amount must be at least 1 sun")
	}

	var ext *api.TransactionExtention
	switch req.Asset {
	case chain.AssetTRX:
		ext, err = c.node.Transfer(req.From, req.To, amount)
	case chain.AssetUSDT:
		ext, err = c.node.TRC20Send(req.From, req.To, c.usdt, big.NewInt(amount), trc20FeeLimit)
	default:
		return "", fmt.Errorf("unsupported asset %q", req.Asset)
	}
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}
	if ext == nil || ext.GetTransaction() == nil || ext.GetTransaction().GetRawData() == nil {
		return "", errors.New("build transaction: node returned an empty transaction")
	}
	if res := ext.GetResult(); res != nil && res.GetCode() != api.Return_SUCCESS {
		return "", fmt.Errorf("build transaction: %s", res.GetMessage())
	}

	tx := ext.GetTransaction()
	if req.Asset == chain.AssetTRX {
		tx.RawData.Data = []byte(transferMemo)
	}

	txID, err := signTransaction(tx, req.PrivateKey)
	if err != nil {
		return "", err
	}

	result, err := c.node.Broadcast(tx)
	if err != nil {
		c.logger.Error("broadcast failed",
			slog.String("asset", string(req.Asset)),
			slog.String("from", req.From),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", chain.ErrBroadcast, err)
	}
	if result != nil && !result.GetResult() {
		return "", fmt.Errorf("%w: %s", chain.ErrBroadcast, result.GetMessage())
	}

	c.logger.Info("transaction broadcast",
		slog.String("tx_id", txID),
		slog.String("asset", string(req.Asset)),
		slog.String("from", req.From),
		slog.String("to", req.To),
		slog.String("amount", req.Amount.String()))
	return txID, nil
}
