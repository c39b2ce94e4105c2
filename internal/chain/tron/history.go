package tron

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fbsobreira/gotron-sdk/pkg/address"
	"github.com/shopspring/decimal"

	"github.com/tron-wallet/tron_wallet/internal/chain"
)

const (
	maxHistoryLimit  = 200
	trc20TransferSig = "a9059cbb"
)

// historyClient reads address history from the TronGrid REST API.
type historyClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func newHistoryClient(baseURL, apiKey string, logger *slog.Logger) *historyClient {
	return &historyClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type accountTransactionsResponse struct {
	Success bool              `json:"success"`
	Data    []gridTransaction `json:"data"`
}

type gridTransaction struct {
	TxID           string `json:"txID"`
	BlockNumber    int64  `json:"blockNumber"`
	BlockTimestamp int64  `json:"block_timestamp"`
	Ret            []struct {
		ContractRet string `json:"contractRet"`
	} `json:"ret"`
	RawData struct {
		Contract []struct {
			Type      string `json:"type"`
			Parameter struct {
				Value contractValue `json:"value"`
			} `json:"parameter"`
		} `json:"contract"`
	} `json:"raw_data"`
}

type contractValue struct {
	Amount          int64  `json:"amount"`
	OwnerAddress    string `json:"owner_address"`
	ToAddress       string `json:"to_address"`
	ContractAddress string `json:"contract_address"`
	Data            string `json:"data"`
}

func (h *historyClient) accountTransactions(ctx context.Context, addr string, limit int, usdt string) ([]chain.Transaction, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	endpoint := fmt.Sprintf("%s/v1/accounts/%s/transactions?limit=%s",
		h.baseURL, url.PathEscape(addr), strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if h.apiKey != "" {
		req.Header.Set("TRON-PRO-API-KEY", h.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("trongrid error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload accountTransactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	txs := make([]chain.Transaction, 0, len(payload.Data))
	for _, gt := range payload.Data {
		txs = append(txs, gt.toTransaction(usdt))
	}

	h.logger.Debug("account transactions retrieved",
		slog.String("address", addr),
		slog.Int("count", len(txs)))
	return txs, nil
}

func (gt gridTransaction) toTransaction(usdt string) chain.Transaction {
	tx := chain.Transaction{
		ID:          gt.TxID,
		BlockNumber: gt.BlockNumber,
		Timestamp:   time.UnixMilli(gt.BlockTimestamp).UTC(),
		Amount:      decimal.Zero,
	}
	if len(gt.Ret) > 0 {
		tx.Status = gt.Ret[0].ContractRet
	}
	if len(gt.RawData.Contract) == 0 {
		return tx
	}

	contract := gt.RawData.Contract[0]
	value := contract.Parameter.Value
	tx.Type = contract.Type
	tx.From = base58FromHex(value.OwnerAddress)

	switch contract.Type {
	case "TransferContract":
		tx.To = base58FromHex(value.ToAddress)
		tx.Amount = chain.FromSun(value.Amount)
		tx.Asset = chain.AssetTRX
	case "TriggerSmartContract":
		data := value.Data
		if len(data) >= 136 && data[:8] == trc20TransferSig {
			tx.To = base58FromHex("41" + data[32:72])
			if amount, ok := new(big.Int).SetString(data[72:136], 16); ok {
				tx.Amount = chain.FromSunBig(amount)
			}
			tx.Asset = "TRC20"
			if base58FromHex(value.ContractAddress) == usdt {
				tx.Asset = chain.AssetUSDT
			}
		}
	}
	return tx
}

// base58FromHex converts a 41-prefixed hex address; unparseable input is
// returned unchanged.
func base58FromHex(s string) string {
	if s == "" {
		return ""
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 21 {
		return s
	}
	return address.Address(raw).String()
}
