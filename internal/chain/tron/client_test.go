package tron

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fbsobreira/gotron-sdk/pkg/address"
	"github.com/fbsobreira/gotron-sdk/pkg/proto/api"
	"github.com/fbsobreira/gotron-sdk/pkg/proto/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/tron-wallet/tron_wallet/internal/chain"
	"github.com/tron-wallet/tron_wallet/internal/logging"
)

const testUSDT = "TXLAQ63Xg1NAzckPwKHvzw7CSEmLMEqcdj"

type fakeNode struct {
	balance      int64
	accountErr   error
	tokenBalance *big.Int

	transferAmount int64
	trc20Contract  string
	trc20Amount    *big.Int
	trc20FeeLimit  int64

	broadcastResult *api.Return
	broadcastErr    error
	broadcasted     *core.Transaction
	stopped         bool
}

func newTx() *api.TransactionExtention {
	return &api.TransactionExtention{
		Transaction: &core.Transaction{RawData: &core.TransactionRaw{
			RefBlockBytes: []byte{0x01, 0x02},
			Timestamp:     1_700_000_000_000,
			Expiration:    1_700_000_060_000,
		}},
		Result: &api.Return{Result: true, Code: api.Return_SUCCESS},
	}
}

func (f *fakeNode) GetAccount(string) (*core.Account, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return &core.Account{Balance: f.balance}, nil
}

func (f *fakeNode) TRC20ContractBalance(string, string) (*big.Int, error) {
	return f.tokenBalance, nil
}

func (f *fakeNode) Transfer(_, _ string, amount int64) (*api.TransactionExtention, error) {
	f.transferAmount = amount
	return newTx(), nil
}

func (f *fakeNode) TRC20Send(_, _, contract string, amount *big.Int, feeLimit int64) (*api.TransactionExtention, error) {
	f.trc20Contract = contract
	f.trc20Amount = amount
	f.trc20FeeLimit = feeLimit
	return newTx(), nil
}

func (f *fakeNode) Broadcast(tx *core.Transaction) (*api.Return, error) {
	f.broadcasted = tx
	if f.broadcastErr != nil {
		return nil, f.broadcastErr
	}
	if f.broadcastResult != nil {
		return f.broadcastResult, nil
	}
	return &api.Return{Result: true}, nil
}

func (f *fakeNode) Stop() { f.stopped = true }

func newTestClient(n *fakeNode) *Client {
	return newClient(n, newHistoryClient("http://127.0.0.1:0", "", logging.Discard()), testUSDT, "nile", logging.Discard())
}

func TestAccountGenerationAndImport(t *testing.T) {
	c := newTestClient(&fakeNode{})

	acc, err := c.NewAccount(context.Background())
	require.NoError(t, err)
	assert.Len(t, acc.Address, 34)
	assert.Equal(t, byte('T'), acc.Address[0])
	assert.Len(t, acc.PrivateKey, 64)
	assert.Len(t, acc.HexAddress, 42)
	assert.Equal(t, "41", acc.HexAddress[:2])
	require.NoError(t, c.ValidateAddress(acc.Address))

	imported, err := c.AccountFromKey(acc.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, acc, imported)

	prefixed, err := c.AccountFromKey("0x" + acc.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, acc.Address, prefixed.Address)
}

func TestAccountFromKeyRejectsGarbage(t *testing.T) {
	c := newTestClient(&fakeNode{})
	for _, key := range []string{"", "zz", "1234", "not-a-key-at-all"} {
		_, err := c.AccountFromKey(key)
		assert.ErrorIs(t, err, chain.ErrInvalidKey, key)
	}
}

func TestValidateAddress(t *testing.T) {
	c := newTestClient(&fakeNode{})
	require.NoError(t, c.ValidateAddress(testUSDT))

	for _, addr := range []string{"", "T123", "XLAQ63Xg1NAzckPwKHvzw7CSEmLMEqcdjT", "TXLAQ63Xg1NAzckPwKHvzw7CSEmLMEqcdk"} {
		assert.ErrorIs(t, c.ValidateAddress(addr), chain.ErrInvalidAddress, addr)
	}
}

func TestBalances(t *testing.T) {
	n := &fakeNode{balance: 12_500_000, tokenBalance: big.NewInt(3_000_000)}
	c := newTestClient(n)

	trx, err := c.Balance(context.Background(), testUSDT)
	require.NoError(t, err)
	assert.True(t, trx.Equal(decimal.RequireFromString("12.5")))

	usdt, err := c.TokenBalance(context.Background(), testUSDT)
	require.NoError(t, err)
	assert.True(t, usdt.Equal(decimal.NewFromInt(3)))

	n.accountErr = errors.New("account not found")
	trx, err = c.Balance(context.Background(), testUSDT)
	require.NoError(t, err)
	assert.True(t, trx.IsZero())

	_, err = c.Balance(context.Background(), "bogus")
	assert.ErrorIs(t, err, chain.ErrInvalidAddress)
}

func TestTransferTRXSignsAndBroadcasts(t *testing.T) {
	n := &fakeNode{}
	c := newTestClient(n)
	from, err := c.NewAccount(context.Background())
	require.NoError(t, err)
	to, err := c.NewAccount(context.Background())
	require.NoError(t, err)

	txID, err := c.Transfer(context.Background(), chain.TransferRequest{
		From:       from.Address,
		To:         to.Address,
		Amount:     decimal.RequireFromString("1.5"),
		Asset:      chain.AssetTRX,
		PrivateKey: from.PrivateKey,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), n.transferAmount)

	require.NotNil(t, n.broadcasted)
	assert.Equal(t, transferMemo, string(n.broadcasted.RawData.Data))
	require.Len(t, n.broadcasted.Signature, 1)

	raw, err := proto.Marshal(n.broadcasted.RawData)
	require.NoError(t, err)
	digest := sha256.Sum256(raw)
	assert.Equal(t, hex.EncodeToString(digest[:]), txID)

	pub, err := crypto.SigToPub(digest[:], n.broadcasted.Signature[0])
	require.NoError(t, err)
	assert.Equal(t, from.Address, address.PubkeyToAddress(*pub).String())
}

func TestTransferUSDTUsesContractAndFeeLimit(t *testing.T) {
	n := &fakeNode{}
	c := newTestClient(n)
	from, err := c.NewAccount(context.Background())
	require.NoError(t, err)

	_, err = c.Transfer(context.Background(), chain.TransferRequest{
		From:       from.Address,
		To:         testUSDT,
		Amount:     decimal.NewFromInt(25),
		Asset:      chain.AssetUSDT,
		PrivateKey: from.PrivateKey,
	})
	require.NoError(t, err)
	assert.Equal(t, testUSDT, n.trc20Contract)
	assert.Equal(t, int64(25_000_000), n.trc20Amount.Int64())
	assert.Equal(t, trc20FeeLimit, n.trc20FeeLimit)
	assert.Empty(t, n.broadcasted.RawData.Data)
}

func TestTransferBroadcastRejected(t *testing.T) {
	n := &fakeNode{broadcastResult: &api.Return{Result: false, Message: []byte("BANDWITH_ERROR")}}
	c := newTestClient(n)
	from, err := c.NewAccount(context.Background())
	require.NoError(t, err)

	_, err = c.Transfer(context.Background(), chain.TransferRequest{
		From:       from.Address,
		To:         testUSDT,
		Amount:     decimal.NewFromInt(1),
		Asset:      chain.AssetTRX,
		PrivateKey: from.PrivateKey,
	})
	require.ErrorIs(t, err, chain.ErrBroadcast)
	assert.Contains(t, err.Error(), "BANDWITH_ERROR")
}

func TestTransferRejectsBadKey(t *testing.T) {
	n := &fakeNode{}
	c := newTestClient(n)

	_, err := c.Transfer(context.Background(), chain.TransferRequest{
		From:       testUSDT,
		To:         testUSDT,
		Amount:     decimal.NewFromInt(1),
		Asset:      chain.AssetTRX,
		PrivateKey: "nope",
	})
	require.ErrorIs(t, err, chain.ErrInvalidKey)
	assert.Nil(t, n.broadcasted)
}

func TestTransferRejectsUnrepresentableAmount(t *testing.T) {
	n := &fakeNode{}
	c := newTestClient(n)
	from, err := c.NewAccount(context.Background())
	require.NoError(t, err)

	for _, amount := range []string{"1.0000009", "18446744073709.551621"} {
		_, err = c.Transfer(context.Background(), chain.TransferRequest{
			From:       from.Address,
			To:         testUSDT,
			Amount:     decimal.RequireFromString(amount),
			Asset:      chain.AssetTRX,
			PrivateKey: from.PrivateKey,
		})
		require.ErrorIs(t, err, chain.ErrAmountOutOfRange, amount)
	}
	assert.Zero(t, n.transferAmount)
	assert.Nil(t, n.broadcasted)
}

func TestStop(t *testing.T) {
	n := &fakeNode{}
	newTestClient(n).Stop()
	assert.True(t, n.stopped)
}
