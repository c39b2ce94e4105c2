package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tron-wallet/tron_wallet/internal/chain"
	"github.com/tron-wallet/tron_wallet/internal/notification"
	"github.com/tron-wallet/tron_wallet/internal/wallet"
)

const statusBroadcasted = "broadcasted"

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnsupportedToken  = errors.New("unsupported token type")
	ErrTransactionFailed = errors.New("transaction failed")
)

// Service sends transfers from custodial wallets.
type Service struct {
	wallets  *wallet.Service
	chain    chain.Client
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs a payment service.
func NewService(wallets *wallet.Service, chainClient chain.Client, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{wallets: wallets, chain: chainClient, notifier: notifier, logger: logger}
}

// SendInput captures a transfer request from an authenticated owner.
type SendInput struct {
	OwnerID string
	From    string
	To      string
	Amount  decimal.Decimal
	Token   string
}

// SendResult describes a broadcast transfer.
type SendResult struct {
	TransactionID string
	From          string
	To            string
	Amount        decimal.Decimal
	Token         string
	Status        string
}

// parseToken maps a requested token type to the chain asset and its label.
func parseToken(token string) (chain.Asset, string, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "", "TRX":
		return chain.AssetTRX, "TRX", nil
	case "USDT", "USDT-TRC20", "TRC20":
		return chain.AssetUSDT, "USDT-TRC20", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedToken, token)
	}
}

// Send resolves the caller's source wallet, then builds, signs and
// broadcasts the transfer. Failures are not retried.
func (s *Service) Send(ctx context.Context, input SendInput) (SendResult, error) {
	asset, label, err := parseToken(input.Token)
	if err != nil {
		return SendResult{}, err
	}
	sun, err := chain.ToSun(input.Amount)
	if err != nil {
		return SendResult{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if sun <= 0 {
		return SendResult{}, fmt.Errorf("%w: must be at least 0.000001", ErrInvalidAmount)
	}

	source, err := s.wallets.ResolveOwned(ctx, input.OwnerID, input.From)
	if err != nil {
		return SendResult{}, err
	}

	txID, err := s.chain.Transfer(ctx, chain.TransferRequest{
		From:       source.Address,
		To:         input.To,
		Amount:     input.Amount,
		Asset:      asset,
		PrivateKey: source.PrivateKey,
	})
	if err != nil {
		s.logger.Warn("transfer failed",
			slog.String("user_id", input.OwnerID),
			slog.String("from", input.From),
			slog.String("token", label),
			slog.String("error", err.Error()))
		return SendResult{}, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	if s.notifier != nil {
		if err := s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferBroadcast,
			Destination: input.OwnerID,
			Reference:   txID,
			Body:        fmt.Sprintf("Sent %s %s from %s to %s", input.Amount.String(), label, source.Address, input.To),
		}); err != nil {
			s.logger.Warn("transfer notification failed",
				slog.String("user_id", input.OwnerID),
				slog.String("tx_id", txID),
				slog.String("error", err.Error()))
		}
	}

	return SendResult{
		TransactionID: txID,
		From:          source.Address,
		To:            input.To,
		Amount:        input.Amount,
		Token:         label,
		Status:        statusBroadcasted,
	}, nil
}
