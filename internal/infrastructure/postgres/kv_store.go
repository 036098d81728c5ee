package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KVStore implementa el puerto clave-valor durable sobre una tabla kv en
// PostgreSQL. Cada Set es un upsert en su propia transacción implícita: la
// escritura resolvió o no resolvió, nunca queda a medias.
type KVStore struct {
	pool *pgxpool.Pool
}

// NewKVStore construye el adaptador y crea la tabla si no existe.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool) (*KVStore, error) {
	const ddl = `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("crear tabla kv: %w", err)
	}
	return &KVStore{pool: pool}, nil
}

// Get devuelve el valor y si la clave existe.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

// Set escribe el valor con upsert.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}
