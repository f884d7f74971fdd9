package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/outflowhq/outflow/pkg/persistence"
	"github.com/outflowhq/outflow/pkg/persistence/file"
	"github.com/outflowhq/outflow/pkg/persistence/memory"
	"github.com/outflowhq/outflow/pkg/persistence/postgresql"
)

// NewPersistence builds a store from a database URL. Supported schemes are
// postgres://, file:// and memory://; anything else is treated as a file
// path.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgresql.NewPersistence(ctx, logger, databaseURL)
	case strings.HasPrefix(databaseURL, "memory://"), databaseURL == "":
		return memory.NewPersistence(), nil
	case strings.HasPrefix(databaseURL, "file://"):
		return file.NewPersistence(strings.TrimPrefix(databaseURL, "file://")), nil
	default:
		return file.NewPersistence(databaseURL), nil
	}
}
