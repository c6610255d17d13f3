package sqlsession

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"

	"github.com/TechXTT/ydbc/pkg/logutil"
	"github.com/TechXTT/ydbc/pkg/session"
)

// Provider hands out sessions sharing one database handle.
type Provider struct {
	db     *sqlx.DB
	logger *zap.Logger
}

var _ session.Provider = (*Provider)(nil)

// Open opens a database handle for driverName ("postgres" or "sqlite3").
func Open(driverName, dsn string, lg *zap.Logger) (*Provider, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlsession: DSN is empty")
	}
	// Ensure SSL mode is disabled by default if not specified.
	if driverName == "postgres" && strings.HasPrefix(dsn, "postgres://") && !strings.Contains(dsn, "sslmode=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = dsn + sep + "sslmode=disable"
	}
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlsession: open db: %w", err)
	}
	return NewProvider(db, lg), nil
}

// NewProvider wraps an existing handle.
func NewProvider(db *sqlx.DB, lg *zap.Logger) *Provider {
	return &Provider{db: db, logger: logutil.Or(lg)}
}

// CreateSession returns a fresh session on the shared handle.
func (p *Provider) CreateSession(ctx context.Context) (session.Session, error) {
	return New(p.db, p.logger), nil
}

// Ping verifies the database is reachable.
func (p *Provider) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database handle.
func (p *Provider) Close() error {
	return p.db.Close()
}
