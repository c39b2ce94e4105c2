package tron

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fbsobreira/gotron-sdk/pkg/address"
	"github.com/fbsobreira/gotron-sdk/pkg/proto/core"
	"google.golang.org/protobuf/proto"

	"github.com/tron-wallet/tron_wallet/internal/chain"
)

// NewAccount generates a fresh secp256k1 keypair.
func (c *Client) NewAccount(_ context.Context) (chain.Account, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return chain.Account{}, fmt.Errorf("generate key: %w", err)
	}
	acc := accountOf(key)
	c.logger.Info("tron account generated", slog.String("address", acc.Address))
	return acc, nil
}

// AccountFromKey derives the account for a hex private key.
func (c *Client) AccountFromKey(privateKey string) (chain.Account, error) {
	key, err := parseKey(privateKey)
	if err != nil {
		return chain.Account{}, err
	}
	return accountOf(key), nil
}

func parseKey(privateKey string) (*ecdsa.PrivateKey, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(privateKey), "0x")
	key, err := crypto.HexToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrInvalidKey, err)
	}
	return key, nil
}

func accountOf(key *ecdsa.PrivateKey) chain.Account {
	addr := address.PubkeyToAddress(key.PublicKey)
	return chain.Account{
		Address:    addr.String(),
		HexAddress: hex.EncodeToString(addr),
		PrivateKey: hex.EncodeToString(crypto.FromECDSA(key)),
	}
}

// signTransaction attaches a signature over sha256(raw_data) and returns the
// transaction id, which is the hex of that same digest.
func signTransaction(tx *core.Transaction, privateKey string) (string, error) {
	key, err := parseKey(privateKey)
	if err != nil {
		return "", err
	}
	rawData, err := proto.Marshal(tx.GetRawData())
	if err != nil {
		return "", fmt.Errorf("marshal raw data: %w", err)
	}
	hash := sha256.Sum256(rawData)
	sig, err := crypto.Sign(hash[:], key)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	tx.Signature = [][]byte{sig}
	return hex.EncodeToString(hash[:]), nil
}
