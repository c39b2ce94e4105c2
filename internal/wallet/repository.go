package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists wallets.
type Repository interface {
	Create(ctx context.Context, wallet Wallet) error
	Get(ctx context.Context, id string) (Wallet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Wallet, error)
	FindByOwnerAndAddress(ctx context.Context, ownerID, address string) (Wallet, error)
	SetUsed(ctx context.Context, id string, used bool) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const walletColumns = `id, user_id, name, address, private_key, COALESCE(hex_address, ''), is_used, created_at`

// Create inserts a wallet record.
func (r *PostgresRepository) Create(ctx context.Context, wallet Wallet) error {
	walletID, err := uuid.Parse(wallet.ID)
	if err != nil {
		return fmt.Errorf("wallet id: %w", err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, user_id, name, address, private_key, hex_address, is_used, created_at)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`,
		walletID, wallet.OwnerID, wallet.Name, wallet.Address, wallet.PrivateKey, wallet.HexAddress, wallet.IsUsed, wallet.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// Get fetches a wallet by identifier. Malformed identifiers are reported as
// not found.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Wallet, error) {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return Wallet{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1`, walletID)
	return scanWallet(row)
}

// ListByOwner returns the owner's wallets, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Wallet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]Wallet, 0)
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

// FindByOwnerAndAddress resolves an owner's wallet by its base58 address.
func (r *PostgresRepository) FindByOwnerAndAddress(ctx context.Context, ownerID, address string) (Wallet, error) {
	row := r.db.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets
        WHERE user_id = $1 AND address = $2 ORDER BY created_at DESC LIMIT 1`, ownerID, address)
	return scanWallet(row)
}

// SetUsed updates the used flag.
func (r *PostgresRepository) SetUsed(ctx context.Context, id string, used bool) error {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE wallets SET is_used = $1 WHERE id = $2`, used, walletID)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a wallet.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM wallets WHERE id = $1`, walletID)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWallet(row pgx.Row) (Wallet, error) {
	var (
		w         Wallet
		id        uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &w.OwnerID, &w.Name, &w.Address, &w.PrivateKey, &w.HexAddress, &w.IsUsed, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, fmt.Errorf("scan wallet: %w", err)
	}
	w.ID = id.String()
	w.CreatedAt = createdAt.UTC()
	return w, nil
}
