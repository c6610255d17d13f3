package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/TechXTT/ydbc"
	"github.com/TechXTT/ydbc/pkg/logutil"
)

// Migration holds one versioned migration
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Manager applies and rolls back migrations over a connection
type Manager struct {
	conn          *ydbc.Connection
	migrationsDir string
	migrations    []Migration
	logger        *zap.Logger
}

var fileRe = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

// NewManager loads migration files from the specified directory
func NewManager(conn *ydbc.Connection, migrationsDir string, lg *zap.Logger) (*Manager, error) {
	m := &Manager{conn: conn, migrationsDir: migrationsDir, logger: logutil.Or(lg)}
	if err := m.loadMigrations(); err != nil {
		return nil, err
	}
	return m, nil
}

// Migrations returns the loaded migrations sorted by version
func (m *Manager) Migrations() []Migration {
	return append([]Migration(nil), m.migrations...)
}

// loadMigrations reads .up.sql/.down.sql files and organizes them by version
func (m *Manager) loadMigrations() error {
	entries, err := os.ReadDir(m.migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	tmp := map[int]*Migration{}
	for _, fi := range entries {
		if fi.IsDir() {
			continue
		}
		matches := fileRe.FindStringSubmatch(fi.Name())
		if len(matches) != 4 {
			continue
		}
		ver, _ := strconv.Atoi(matches[1])
		data, err := os.ReadFile(filepath.Join(m.migrationsDir, fi.Name()))
		if err != nil {
			return fmt.Errorf("read %s: %w", fi.Name(), err)
		}
		mig, exists := tmp[ver]
		if !exists {
			mig = &Migration{Version: ver, Name: matches[2]}
			tmp[ver] = mig
		}
		if matches[3] == "up" {
			mig.UpSQL = string(data)
		} else {
			mig.DownSQL = string(data)
		}
	}
	versions := make([]int, 0, len(tmp))
	for v := range tmp {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	for _, v := range versions {
		m.migrations = append(m.migrations, *tmp[v])
	}
	return nil
}

func (m *Manager) exec(ctx context.Context, sql string, binds map[string]any) (*ydbc.Result, error) {
	stmt := m.conn.CreateStatement(sql)
	for name, v := range binds {
		if err := stmt.Bind(name, v); err != nil {
			return nil, err
		}
	}
	return stmt.Execute(ctx).Await(ctx)
}

// EnsureVersionTable creates schema_migrations if missing
func (m *Manager) EnsureVersionTable(ctx context.Context) error {
	_, err := m.exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version BIGINT PRIMARY KEY);`, nil)
	return err
}

// currentVersion returns the highest applied migration version
func (m *Manager) currentVersion(ctx context.Context) (int, error) {
	res, err := m.exec(ctx, `SELECT MAX(version) FROM schema_migrations;`, nil)
	if err != nil {
		return 0, err
	}
	sets := res.ResultSets()
	if len(sets) == 0 || len(sets[0].Rows) == 0 || len(sets[0].Rows[0]) == 0 {
		return 0, nil
	}
	return toInt(sets[0].Rows[0][0])
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return int(x), nil
	case int32:
		return int(x), nil
	case int:
		return x, nil
	case float64:
		return int(x), nil
	case []byte:
		return strconv.Atoi(string(x))
	case string:
		return strconv.Atoi(x)
	default:
		return 0, fmt.Errorf("unexpected version value %T", v)
	}
}

// inTx runs fn inside a transaction, rolling back on failure
func (m *Manager) inTx(ctx context.Context, fn func() error) error {
	if err := m.conn.BeginTransaction(ctx); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if rbErr := m.conn.RollbackTransaction(ctx); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return m.conn.CommitTransaction(ctx)
}

// Up applies all pending migrations, each in its own transaction
func (m *Manager) Up(ctx context.Context) error {
	if err := m.EnsureVersionTable(ctx); err != nil {
		return err
	}
	current, err := m.currentVersion(ctx)
	if err != nil {
		return err
	}

	for _, mig := range m.migrations {
		if mig.Version <= current {
			continue
		}
		m.logger.Info("applying migration", zap.Int("version", mig.Version), zap.String("name", mig.Name))
		err := m.inTx(ctx, func() error {
			if _, err := m.exec(ctx, mig.UpSQL, nil); err != nil {
				return fmt.Errorf("apply up %d: %w", mig.Version, err)
			}
			if _, err := m.exec(ctx, `INSERT INTO schema_migrations(version) VALUES($version);`,
				map[string]any{"version": int64(mig.Version)}); err != nil {
				return fmt.Errorf("record version %d: %w", mig.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Down rolls back the latest migration
func (m *Manager) Down(ctx context.Context) error {
	if err := m.EnsureVersionTable(ctx); err != nil {
		return err
	}
	current, err := m.currentVersion(ctx)
	if err != nil {
		return err
	}
	if current == 0 {
		m.logger.Info("no migrations to roll back")
		return nil
	}
	var toRoll *Migration
	for i := len(m.migrations) - 1; i >= 0; i-- {
		if m.migrations[i].Version == current {
			toRoll = &m.migrations[i]
			break
		}
	}
	if toRoll == nil {
		return fmt.Errorf("migration not found for version %d", current)
	}
	m.logger.Info("rolling back migration", zap.Int("version", toRoll.Version), zap.String("name", toRoll.Name))
	return m.inTx(ctx, func() error {
		if _, err := m.exec(ctx, toRoll.DownSQL, nil); err != nil {
			return fmt.Errorf("apply down %d: %w", toRoll.Version, err)
		}
		if _, err := m.exec(ctx, `DELETE FROM schema_migrations WHERE version = $version;`,
			map[string]any{"version": int64(toRoll.Version)}); err != nil {
			return fmt.Errorf("delete version %d: %w", toRoll.Version, err)
		}
		return nil
	})
}

// Status reports the current version and whether each migration is applied
func (m *Manager) Status(ctx context.Context) (string, error) {
	if err := m.EnsureVersionTable(ctx); err != nil {
		return "", err
	}
	current, err := m.currentVersion(ctx)
	if err != nil {
		return "", err
	}
	lines := []string{fmt.Sprintf("Current version: %d", current)}
	for _, mig := range m.migrations {
		applied := "pending"
		if mig.Version <= current {
			applied = "applied"
		}
		lines = append(lines, fmt.Sprintf("%d_%s: %s", mig.Version, mig.Name, applied))
	}
	return strings.Join(lines, "\n"), nil
}
