package state

import (
	"fmt"

	"github.com/TechXTT/ydbc/pkg/spi"
)

// Event drives a transition.
type Event interface {
	event()
}

// Begin records a transaction the session has opened.
type Begin struct{ TxID string }

// Execute is a statement dispatch; it never changes the state.
type Execute struct{}

// Commit finalizes the open transaction.
type Commit struct{}

// Rollback discards the open transaction.
type Rollback struct{}

// Close moves the connection to its terminal state.
type Close struct{}

func (Begin) event()    {}
func (Execute) event()  {}
func (Commit) event()   {}
func (Rollback) event() {}
func (Close) event()    {}

// Allowed reports whether e may be applied to s, without needing the event's
// payload. Callers use it before asking the session for work.
func Allowed(s State, e Event) error {
	if s.kind == Closed {
		return spi.ErrConnectionClosed
	}
	if _, ok := e.(Begin); ok && s.kind == InTransaction {
		return fmt.Errorf("%w: %s", spi.ErrTransactionActive, s.txID)
	}
	return nil
}

// Transition returns the state reached from s on e. On error s is returned
// unchanged.
func Transition(s State, e Event) (State, error) {
	if err := Allowed(s, e); err != nil {
		return s, err
	}
	switch ev := e.(type) {
	case Begin:
		if ev.TxID == "" {
			return s, fmt.Errorf("state: begin without a transaction id")
		}
		return State{kind: InTransaction, txID: ev.TxID}, nil
	case Execute:
		return s, nil
	case Commit, Rollback:
		return State{kind: Autocommit}, nil
	case Close:
		return State{kind: Closed}, nil
	default:
		return s, fmt.Errorf("state: unknown event %T", e)
	}
}
