// Package session defines the engine session the connection layer drives.
package session

import (
	"context"

	"github.com/TechXTT/ydbc/pkg/parameter"
)

// Session executes statements against the engine. Implementations own the
// network and transaction bookkeeping; errors they return are passed to the
// caller untouched.
type Session interface {
	// ExecuteDataQuery runs sql bound to tx with the given named parameters.
	ExecuteDataQuery(ctx context.Context, sql string, tx TxControl, params *parameter.Params) (*DataQueryResult, error)
	// BeginTransaction opens a transaction and returns its server-issued id.
	BeginTransaction(ctx context.Context) (string, error)
	Commit(ctx context.Context, txID string) error
	Rollback(ctx context.Context, txID string) error
	// Close releases the session. Open transactions are abandoned, not committed.
	Close(ctx context.Context) error
}

// Provider creates sessions for new connections.
type Provider interface {
	CreateSession(ctx context.Context) (Session, error)
}

// TxControl selects the transaction a statement runs in.
type TxControl struct {
	txID string
}

// Autocommit runs the statement in its own implicit transaction.
func Autocommit() TxControl {
	return TxControl{}
}

// TxID binds the statement to an open transaction.
func TxID(id string) TxControl {
	return TxControl{txID: id}
}

// IsAutocommit reports whether no transaction is bound.
func (c TxControl) IsAutocommit() bool {
	return c.txID == ""
}

// ID returns the bound transaction id, empty in autocommit mode.
func (c TxControl) ID() string {
	return c.txID
}

func (c TxControl) String() string {
	if c.IsAutocommit() {
		return "autocommit"
	}
	return "tx(" + c.txID + ")"
}
