package listings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/stayscout/stayscout/pkg/embedding"
)

// Service executes listing searches against the relational store.
type Service struct {
	pool     *pgxpool.Pool
	embedder embedding.Embedder
	logger   *slog.Logger
}

// NewService creates a search service.
func NewService(pool *pgxpool.Pool, embedder embedding.Embedder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pool: pool, embedder: embedder, logger: logger}
}

// Search embeds the request's similarity text (when present), compiles
// the filters and runs the resulting statement. Embedding failure is
// fatal for the request; degrading to an unranked search would silently
// change result ordering. Read-only.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]map[string]any, error) {
	var vec *pgvector.Vector
	if req.SimilarityText != "" {
		values, err := s.embedder.Embed(ctx, req.SimilarityText)
		if err != nil {
			return nil, fmt.Errorf("embedding similarity text: %w", err)
		}
		v := pgvector.NewVector(values)
		vec = &v
	}

	compiled, err := Compile(req.Filters, vec)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("executing listings search",
		slog.String("sql", compiled.SQL),
		slog.Int("params", len(compiled.Params)),
	)

	rows, err := s.pool.Query(ctx, compiled.SQL, compiled.Params...)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var results []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scanning listing row: %w", err)
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = renderValue(values[i])
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading listing rows: %w", err)
	}

	return results, nil
}

// renderValue coerces driver values to transport-friendly scalars.
// Timestamps become ISO-like strings; everything else passes through.
func renderValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	return v
}
