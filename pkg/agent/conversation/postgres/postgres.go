// Package postgres implements conversation.Store on PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayscout/stayscout/pkg/agent/types"
)

// Store implements conversation.Store with PostgreSQL
type Store struct {
	pool      *pgxpool.Pool
	tableName string
}

// Option configures the store
type Option func(*Store)

// WithTableName sets a custom table name
func WithTableName(name string) Option {
	return func(s *Store) {
		s.tableName = name
	}
}

// New creates a new PostgreSQL conversation store
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{
		pool:      pool,
		tableName: "conversations",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, id string) (*types.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, messages, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, s.tableName)

	row := s.pool.QueryRow(ctx, query, id)

	var conv types.Conversation
	var messagesJSON []byte

	err := row.Scan(&conv.ID, &messagesJSON, &conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}

	if err := json.Unmarshal(messagesJSON, &conv.Messages); err != nil {
		return nil, fmt.Errorf("unmarshaling messages: %w", err)
	}

	return &conv, nil
}

func (s *Store) Save(ctx context.Context, conv *types.Conversation) error {
	messagesJSON, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("marshaling messages: %w", err)
	}

	conv.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			messages = EXCLUDED.messages,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query, conv.ID, messagesJSON, conv.CreatedAt, conv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving conversation: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	_, err := s.pool.Exec(ctx, query, id)
	return err
}

// Migration returns the SQL to create the conversations table
func Migration(tableName string) string {
	if tableName == "" {
		tableName = "conversations"
	}
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			messages JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_%s_updated_at ON %s (updated_at DESC);
	`, tableName, tableName, tableName)
}
