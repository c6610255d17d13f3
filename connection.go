// Package ydbc adapts a portable statement API to a YDB-style session:
// typed parameter binding and per-connection transaction state.
package ydbc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/TechXTT/ydbc/internal/future"
	"github.com/TechXTT/ydbc/internal/state"
	"github.com/TechXTT/ydbc/pkg/metrics"
	"github.com/TechXTT/ydbc/pkg/parameter"
	"github.com/TechXTT/ydbc/pkg/session"
)

// Connection is one logical connection over a session. It is not safe for
// concurrent use: one operation is expected in flight at a time.
type Connection struct {
	session session.Session
	state   state.State
	logger  *zap.Logger
}

func newConnection(s session.Session, lg *zap.Logger) *Connection {
	return &Connection{session: s, state: state.Initial(), logger: lg}
}

// State returns the current state variant.
func (c *Connection) State() state.Kind {
	return c.state.Kind()
}

// IsAutoCommit reports whether statements run outside a transaction.
func (c *Connection) IsAutoCommit() bool {
	return c.state.Kind() == state.Autocommit
}

// TransactionID returns the open transaction id, empty when none is open.
func (c *Connection) TransactionID() string {
	return c.state.TxID()
}

func (c *Connection) transition(e state.Event) error {
	next, err := state.Transition(c.state, e)
	if err != nil {
		return err
	}
	if next != c.state {
		c.logger.Debug("connection state changed",
			zap.Stringer("from", c.state),
			zap.Stringer("to", next))
	}
	c.state = next
	return nil
}

// BeginTransaction asks the session for a new transaction and binds every
// following statement to it.
func (c *Connection) BeginTransaction(ctx context.Context) error {
	if err := state.Allowed(c.state, state.Begin{}); err != nil {
		return err
	}
	id, err := c.session.BeginTransaction(ctx)
	if err == nil && id == "" {
		err = fmt.Errorf("session returned an empty transaction id")
	}
	metrics.TransactionCounter.WithLabelValues(metrics.LblBegin, metrics.RetLabel(err)).Inc()
	if err != nil {
		c.logger.Warn("begin transaction failed", zap.Error(err))
		return err
	}
	return c.transition(state.Begin{TxID: id})
}

// CommitTransaction commits the open transaction. Without one it does nothing.
func (c *Connection) CommitTransaction(ctx context.Context) error {
	return c.finish(ctx, state.Commit{}, metrics.LblCommit, c.session.Commit)
}

// RollbackTransaction discards the open transaction. Without one it does nothing.
func (c *Connection) RollbackTransaction(ctx context.Context) error {
	return c.finish(ctx, state.Rollback{}, metrics.LblRollback, c.session.Rollback)
}

func (c *Connection) finish(ctx context.Context, e state.Event, op string, fn func(context.Context, string) error) error {
	if err := state.Allowed(c.state, e); err != nil {
		return err
	}
	if c.state.Kind() == state.Autocommit {
		return nil
	}
	txID := c.state.TxID()
	err := fn(ctx, txID)
	metrics.TransactionCounter.WithLabelValues(op, metrics.RetLabel(err)).Inc()
	if err != nil {
		// The transaction stays open; the caller decides whether to retry or roll back.
		c.logger.Warn(op+" failed", zap.String("txID", txID), zap.Error(err))
		return err
	}
	return c.transition(e)
}

// Close moves the connection to its terminal state and releases the session.
// An open transaction is abandoned, never committed.
func (c *Connection) Close(ctx context.Context) error {
	abandoned := c.state.TxID()
	if err := c.transition(state.Close{}); err != nil {
		return err
	}
	if abandoned != "" {
		c.logger.Info("closing connection with an open transaction", zap.String("txID", abandoned))
	}
	return c.session.Close(ctx)
}

// ExecuteDataQuery dispatches sql through the current state. On a closed
// connection the returned future has already failed and the session is not
// called. Session errors are returned as they are.
func (c *Connection) ExecuteDataQuery(ctx context.Context, sql string, params *parameter.Params) *future.Future[*session.DataQueryResult] {
	if err := c.transition(state.Execute{}); err != nil {
		return future.Failed[*session.DataQueryResult](err)
	}
	tx, err := c.state.TxControl()
	if err != nil {
		return future.Failed[*session.DataQueryResult](err)
	}
	metrics.StatementCounter.WithLabelValues(c.state.Kind().String()).Inc()

	s, lg := c.session, c.logger
	return future.Go(func() (*session.DataQueryResult, error) {
		res, err := s.ExecuteDataQuery(ctx, sql, tx, params)
		if err != nil {
			lg.Debug("data query failed", zap.Stringer("tx", tx), zap.Error(err))
			return nil, err
		}
		return res, nil
	})
}

// CreateStatement prepares sql for binding and execution on c.
func (c *Connection) CreateStatement(sql string) *Statement {
	return &Statement{conn: c, sql: sql, params: parameter.NewParams()}
}

// CreateBatch returns an empty batch executed on c.
func (c *Connection) CreateBatch() *Batch {
	return &Batch{conn: c}
}
