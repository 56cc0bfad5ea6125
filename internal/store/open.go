package store

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/worktravel/internal/store/jsonstore"
	"github.com/idilsaglam/worktravel/internal/store/sqlitestore"
)

// Backend kinds accepted by Open.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open returns the backend named by kind, storing its files under dir.
func Open(kind, dir string, logger *log.Logger) (Backend, error) {
	switch kind {
	case KindJSON, "":
		return jsonstore.Open(dir, logger)
	case KindSQLite:
		return sqlitestore.Open(dir)
	case KindMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown backend %q (want json, sqlite or memory)", kind)
}
