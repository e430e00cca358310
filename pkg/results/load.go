package results

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sparced/benchviz/pkg/errors"
)

// Load reads a results store, choosing the format from the file extension:
// .db, .sqlite and .sqlite3 are SQLite databases, anything else is JSON.
func Load(ctx context.Context, path string) (*Store, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return LoadJSON(path)
	}
}
