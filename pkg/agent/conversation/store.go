// Package conversation persists per-session chat history.
package conversation

import (
	"context"

	"github.com/stayscout/stayscout/pkg/agent/types"
)

// Store defines conversation persistence. Get returns (nil, nil) for an
// unknown ID; callers start a fresh conversation in that case.
type Store interface {
	Get(ctx context.Context, id string) (*types.Conversation, error)
	Save(ctx context.Context, conv *types.Conversation) error
	Delete(ctx context.Context, id string) error
}
