package store

import (
	"database/sql"

	"github.com/adilfashion/tailorsync/internal/logger"
)

// DB wraps the standard library connection pool together with the logger the
// repositories fall back to when no context-scoped logger is available.
type DB struct {
	*sql.DB
	logger *logger.Logger
}
