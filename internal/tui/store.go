package tui

import (
	"context"

	"github.com/gmwallet/gm/internal/config"
)

// Store is the persistence used by the pages. *config.Store implements it.
type Store interface {
	Load(ctx context.Context) (config.Config, error)
	Save(ctx context.Context, cfg config.Config) error
	RecordTransfer(ctx context.Context, t config.Transfer) error
}
