package sqlsession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TechXTT/ydbc/pkg/logutil"
	"github.com/TechXTT/ydbc/pkg/parameter"
	"github.com/TechXTT/ydbc/pkg/session"
)

// ErrUnknownTransaction is returned for a transaction id this session did not
// issue or has already finalized.
var ErrUnknownTransaction = errors.New("sqlsession: transaction not found or already closed")

// Session runs data queries on a database/sql handle and issues its own
// transaction ids.
type Session struct {
	db     *sqlx.DB
	logger *zap.Logger

	mu  sync.Mutex
	txs map[string]*sqlx.Tx
}

var _ session.Session = (*Session)(nil)

// New returns a session over db. The session does not own db.
func New(db *sqlx.DB, lg *zap.Logger) *Session {
	return &Session{
		db:     db,
		logger: logutil.Or(lg),
		txs:    make(map[string]*sqlx.Tx),
	}
}

func (s *Session) lookup(txID string) (*sqlx.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[txID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransaction, txID)
	}
	return tx, nil
}

func (s *Session) forget(txID string) {
	s.mu.Lock()
	delete(s.txs, txID)
	s.mu.Unlock()
}

func (s *Session) take(txID string) (*sqlx.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[txID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransaction, txID)
	}
	delete(s.txs, txID)
	return tx, nil
}

// ExecuteDataQuery binds params and runs every statement of query in order.
// Statements producing rows are queried and their row sets collected; the
// others are executed and their affected rows summed. Several statements in
// autocommit mode run inside one database transaction.
func (s *Session) ExecuteDataQuery(ctx context.Context, query string, tx session.TxControl, params *parameter.Params) (*session.DataQueryResult, error) {
	stmts, err := s.bind(query, params)
	if err != nil {
		return nil, err
	}
	if ce := s.logger.Check(zap.DebugLevel, "data query"); ce != nil {
		ce.Write(zap.Stringer("tx", tx), zap.Int("statements", len(stmts)), zap.String("declare", params.Declare()))
	}

	if !tx.IsAutocommit() {
		t, err := s.lookup(tx.ID())
		if err != nil {
			return nil, err
		}
		return run(ctx, t, stmts)
	}
	if len(stmts) <= 1 {
		return run(ctx, s.db, stmts)
	}

	t, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlsession: begin failed: %w", err)
	}
	res, err := run(ctx, t, stmts)
	if err != nil {
		_ = t.Rollback()
		return nil, err
	}
	if err := t.Commit(); err != nil {
		return nil, fmt.Errorf("sqlsession: commit failed: %w", err)
	}
	return res, nil
}

// boundStmt is one statement rewritten for the driver.
type boundStmt struct {
	query string
	args  []any
	rows  bool
}

func (s *Session) bind(query string, params *parameter.Params) ([]boundStmt, error) {
	parts := splitStatements(query)
	out := make([]boundStmt, 0, len(parts))
	for _, stmt := range parts {
		q, args, err := bindNamed(stmt, params)
		if err != nil {
			return nil, err
		}
		out = append(out, boundStmt{query: s.db.Rebind(q), args: args, rows: returnsRows(stmt)})
	}
	return out, nil
}

func run(ctx context.Context, ext sqlx.ExtContext, stmts []boundStmt) (*session.DataQueryResult, error) {
	res := &session.DataQueryResult{}
	for _, st := range stmts {
		if st.rows {
			rows, err := ext.QueryxContext(ctx, st.query, st.args...)
			if err != nil {
				return nil, fmt.Errorf("sqlsession: query failed: %w", err)
			}
			err = readResultSets(rows, res)
			rows.Close()
			if err != nil {
				return nil, err
			}
			continue
		}

		r, err := ext.ExecContext(ctx, st.query, st.args...)
		if err != nil {
			return nil, fmt.Errorf("sqlsession: exec failed: %w", err)
		}
		// Drivers that cannot count affected rows contribute nothing.
		if n, err := r.RowsAffected(); err == nil {
			res.RowsAffected += n
		}
	}
	return res, nil
}

func readResultSets(rows *sqlx.Rows, res *session.DataQueryResult) error {
	for {
		cols, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("sqlsession: failed to get columns: %w", err)
		}
		set := session.ResultSet{Columns: cols}
		for rows.Next() {
			row, err := rows.SliceScan()
			if err != nil {
				return fmt.Errorf("sqlsession: failed to scan row: %w", err)
			}
			set.Rows = append(set.Rows, row)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("sqlsession: error iterating rows: %w", err)
		}
		// Statements that return no row set report no columns.
		if len(cols) > 0 {
			res.ResultSets = append(res.ResultSets, set)
		}
		if !rows.NextResultSet() {
			return nil
		}
	}
}

// BeginTransaction opens a database transaction and returns a new id for it.
func (s *Session) BeginTransaction(ctx context.Context) (string, error) {
	// database/sql rolls a transaction back when its context ends; the
	// transaction must outlive the call that opened it.
	tx, err := s.db.BeginTxx(context.WithoutCancel(ctx), nil)
	if err != nil {
		return "", fmt.Errorf("sqlsession: begin transaction failed: %w", err)
	}

	txID := uuid.NewString()
	s.mu.Lock()
	s.txs[txID] = tx
	s.mu.Unlock()
	s.logger.Debug("transaction opened", zap.String("txID", txID))
	return txID, nil
}

// Commit commits txID. The id is forgotten once the commit succeeds; after a
// failed commit it stays registered so that Rollback can release it.
func (s *Session) Commit(ctx context.Context, txID string) error {
	tx, err := s.lookup(txID)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlsession: commit failed: %w", err)
	}
	s.forget(txID)
	return nil
}

// Rollback rolls back and forgets txID. A transaction the database already
// ended, such as one whose commit failed, counts as rolled back.
func (s *Session) Rollback(ctx context.Context, txID string) error {
	tx, err := s.take(txID)
	if err != nil {
		return err
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("sqlsession: rollback failed: %w", err)
	}
	return nil
}

// Close rolls back every transaction still open on the session. The
// underlying handle is left open for other sessions.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	open := s.txs
	s.txs = make(map[string]*sqlx.Tx)
	s.mu.Unlock()

	var g errgroup.Group
	for id, tx := range open {
		id, tx := id, tx
		s.logger.Info("rolling back abandoned transaction", zap.String("txID", id))
		g.Go(func() error {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				return fmt.Errorf("sqlsession: rollback %s: %w", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}
