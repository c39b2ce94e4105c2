package demo

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists generated demo profiles.
type Repository interface {
	Save(ctx context.Context, profile Profile) error
	Count(ctx context.Context) (int, error)
}

// PostgresRepository stores demo profiles in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed demo profile store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save inserts a demo profile.
func (r *PostgresRepository) Save(ctx context.Context, p Profile) error {
	_, err := r.db.Exec(ctx, `INSERT INTO demo_profiles (id, phone, email, password, wallet_address, balance_trx, balance_usdt, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Phone, p.Email, p.Password, p.WalletAddress,
		p.BalanceTRX.InexactFloat64(), p.BalanceUSDT.InexactFloat64(), p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert demo profile: %w", err)
	}
	return nil
}

// Count returns the number of stored profiles.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM demo_profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count demo profiles: %w", err)
	}
	return n, nil
}

type memoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryRepository builds an in-memory demo profile store.
func NewMemoryRepository() Repository {
	return &memoryRepository{profiles: make(map[string]Profile)}
}

func (r *memoryRepository) Save(_ context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	return nil
}

func (r *memoryRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles), nil
}
