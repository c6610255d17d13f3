// Package state holds the per-connection transaction state machine.
package state

import (
	"fmt"

	"github.com/TechXTT/ydbc/pkg/session"
	"github.com/TechXTT/ydbc/pkg/spi"
)

// Kind names the variant a connection is in.
type Kind uint8

const (
	// Autocommit is the initial state: every statement commits on its own.
	Autocommit Kind = iota
	// InTransaction binds every statement to a server-issued transaction id.
	InTransaction
	// Closed is terminal.
	Closed
)

func (k Kind) String() string {
	switch k {
	case Autocommit:
		return "autocommit"
	case InTransaction:
		return "in_transaction"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", uint8(k))
}

// State is the connection state. The zero value is Autocommit.
type State struct {
	kind Kind
	txID string
}

// Initial returns the state a new connection starts in.
func Initial() State {
	return State{kind: Autocommit}
}

func (s State) Kind() Kind {
	return s.kind
}

// TxID returns the open transaction id, empty outside InTransaction.
func (s State) TxID() string {
	return s.txID
}

// TxControl returns the transaction binding statements must be executed with.
func (s State) TxControl() (session.TxControl, error) {
	switch s.kind {
	case Autocommit:
		return session.Autocommit(), nil
	case InTransaction:
		return session.TxID(s.txID), nil
	default:
		return session.TxControl{}, spi.ErrConnectionClosed
	}
}

func (s State) String() string {
	if s.kind == InTransaction {
		return fmt.Sprintf("%s(%s)", s.kind, s.txID)
	}
	return s.kind.String()
}
