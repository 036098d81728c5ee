package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // driver puro Go, sin cgo
)

// SQLiteStore implementa el puerto clave-valor durable sobre un archivo SQLite.
// Es el driver por defecto: el análogo fiel del almacenamiento local de la
// herramienta original, sin servidor externo.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) el archivo y la tabla kv.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %q: %w", path, err)
	}
	// Un solo escritor: evita SQLITE_BUSY en escrituras concurrentes.
	db.SetMaxOpenConns(1)
	const ddl = `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("crear tabla kv: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get devuelve el valor y si la clave existe.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

// Set escribe el valor con upsert.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Close cierra el archivo.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
