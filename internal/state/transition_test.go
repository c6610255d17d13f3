package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TechXTT/ydbc/pkg/spi"
)

func TestTransition_Table(t *testing.T) {
	auto := Initial()
	inTx := State{kind: InTransaction, txID: "tx-1"}
	closed := State{kind: Closed}

	cases := []struct {
		name    string
		from    State
		ev      Event
		to      State
		wantErr error
	}{
		{"auto begin", auto, Begin{TxID: "tx-1"}, inTx, nil},
		{"auto execute", auto, Execute{}, auto, nil},
		{"auto commit", auto, Commit{}, auto, nil},
		{"auto rollback", auto, Rollback{}, auto, nil},
		{"auto close", auto, Close{}, closed, nil},
		{"tx execute", inTx, Execute{}, inTx, nil},
		{"tx commit", inTx, Commit{}, auto, nil},
		{"tx rollback", inTx, Rollback{}, auto, nil},
		{"tx begin", inTx, Begin{TxID: "tx-2"}, inTx, spi.ErrTransactionActive},
		{"tx close", inTx, Close{}, closed, nil},
		{"closed begin", closed, Begin{TxID: "tx-3"}, closed, spi.ErrConnectionClosed},
		{"closed execute", closed, Execute{}, closed, spi.ErrConnectionClosed},
		{"closed commit", closed, Commit{}, closed, spi.ErrConnectionClosed},
		{"closed rollback", closed, Rollback{}, closed, spi.ErrConnectionClosed},
		{"closed close", closed, Close{}, closed, spi.ErrConnectionClosed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Transition(c.from, c.ev)
			if c.wantErr != nil {
				require.ErrorIs(t, err, c.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, c.to, got)
		})
	}
}

func TestTransition_BeginNeedsID(t *testing.T) {
	s, err := Transition(Initial(), Begin{})
	require.Error(t, err)
	require.Equal(t, Autocommit, s.Kind())
}

func TestTxControl(t *testing.T) {
	tc, err := Initial().TxControl()
	require.NoError(t, err)
	require.True(t, tc.IsAutocommit())

	s, err := Transition(Initial(), Begin{TxID: "abc"})
	require.NoError(t, err)
	tc, err = s.TxControl()
	require.NoError(t, err)
	require.Equal(t, "abc", tc.ID())
	require.Equal(t, "in_transaction(abc)", s.String())

	s, err = Transition(s, Close{})
	require.NoError(t, err)
	_, err = s.TxControl()
	require.ErrorIs(t, err, spi.ErrConnectionClosed)
}

func TestAllowed(t *testing.T) {
	require.NoError(t, Allowed(Initial(), Begin{}))
	require.ErrorIs(t, Allowed(State{kind: InTransaction, txID: "a"}, Begin{}), spi.ErrTransactionActive)
	require.NoError(t, Allowed(State{kind: InTransaction, txID: "a"}, Commit{}))
	require.ErrorIs(t, Allowed(State{kind: Closed}, Execute{}), spi.ErrConnectionClosed)
}
