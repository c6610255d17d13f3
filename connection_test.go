package ydbc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/TechXTT/ydbc/internal/state"
	"github.com/TechXTT/ydbc/pkg/logutil"
	"github.com/TechXTT/ydbc/pkg/spi"
)

func newTestConnection(t *testing.T) (*Connection, *fakeSession) {
	t.Helper()
	fs := &fakeSession{}
	conn, err := NewConnectionFactory(&fakeProvider{session: fs}).Create(context.Background())
	require.NoError(t, err)
	return conn, fs
}

func await(t *testing.T, conn *Connection, sql string) error {
	t.Helper()
	_, err := conn.CreateStatement(sql).Execute(context.Background()).Await(context.Background())
	return err
}

func TestConnection_TransactionLifecycle(t *testing.T) {
	ctx := context.Background()
	conn, fs := newTestConnection(t)
	require.True(t, conn.IsAutoCommit())

	require.NoError(t, conn.BeginTransaction(ctx))
	require.Equal(t, state.InTransaction, conn.State())
	require.Equal(t, "tx-1", conn.TransactionID())

	require.NoError(t, await(t, conn, "SELECT 1"))
	require.NoError(t, conn.CommitTransaction(ctx))
	require.True(t, conn.IsAutoCommit())
	require.NoError(t, await(t, conn, "SELECT 2"))

	want := []call{
		{Op: "begin"},
		{Op: "execute", SQL: "SELECT 1", Tx: "tx-1"},
		{Op: "commit", Tx: "tx-1"},
		{Op: "execute", SQL: "SELECT 2"},
	}
	if diff := cmp.Diff(want, fs.Calls()); diff != "" {
		t.Fatalf("session calls mismatch (-want +got):\n%s", diff)
	}
}

func TestConnection_Rollback(t *testing.T) {
	ctx := context.Background()
	conn, fs := newTestConnection(t)

	require.NoError(t, conn.BeginTransaction(ctx))
	require.NoError(t, conn.RollbackTransaction(ctx))
	require.True(t, conn.IsAutoCommit())
	require.Equal(t, "rollback", fs.Calls()[1].Op)
	require.Equal(t, "tx-1", fs.Calls()[1].Tx)
}

func TestConnection_CommitWithoutTransactionIsNoop(t *testing.T) {
	ctx := context.Background()
	conn, fs := newTestConnection(t)

	require.NoError(t, conn.CommitTransaction(ctx))
	require.NoError(t, conn.RollbackTransaction(ctx))
	require.Empty(t, fs.Calls())
}

func TestConnection_BeginTwice(t *testing.T) {
	ctx := context.Background()
	conn, fs := newTestConnection(t)

	require.NoError(t, conn.BeginTransaction(ctx))
	require.ErrorIs(t, conn.BeginTransaction(ctx), spi.ErrTransactionActive)
	require.Equal(t, "tx-1", conn.TransactionID())
	require.Len(t, fs.Calls(), 1)
}

func TestConnection_BeginFailureKeepsAutocommit(t *testing.T) {
	boom := errors.New("session unavailable")
	fs := &fakeSession{beginErr: boom}
	conn := newConnection(fs, logutil.Nop())

	require.ErrorIs(t, conn.BeginTransaction(context.Background()), boom)
	require.True(t, conn.IsAutoCommit())

	empty := ""
	fs.beginErr, fs.beginID = nil, &empty
	require.Error(t, conn.BeginTransaction(context.Background()))
	require.True(t, conn.IsAutoCommit())
}

func TestConnection_CloseFromEveryState(t *testing.T) {
	ctx := context.Background()

	t.Run("autocommit", func(t *testing.T) {
		conn, fs := newTestConnection(t)
		require.NoError(t, conn.Close(ctx))
		require.Equal(t, state.Closed, conn.State())

		err := await(t, conn, "SELECT 1")
		require.ErrorIs(t, err, spi.ErrConnectionClosed)
		require.Equal(t, []call{{Op: "close"}}, fs.Calls())
	})

	t.Run("in transaction", func(t *testing.T) {
		conn, fs := newTestConnection(t)
		require.NoError(t, conn.BeginTransaction(ctx))
		require.NoError(t, conn.Close(ctx))
		require.Equal(t, state.Closed, conn.State())
		require.Empty(t, conn.TransactionID())

		require.ErrorIs(t, await(t, conn, "SELECT 1"), spi.ErrConnectionClosed)
		require.ErrorIs(t, conn.CommitTransaction(ctx), spi.ErrConnectionClosed)
		require.ErrorIs(t, conn.RollbackTransaction(ctx), spi.ErrConnectionClosed)
		require.ErrorIs(t, conn.BeginTransaction(ctx), spi.ErrConnectionClosed)
		require.ErrorIs(t, conn.Close(ctx), spi.ErrConnectionClosed)

		// no commit was ever sent for the abandoned transaction
		require.Equal(t, []call{{Op: "begin"}, {Op: "close"}}, fs.Calls())
	})
}

func TestConnection_ClosedFutureFailsImmediately(t *testing.T) {
	conn, _ := newTestConnection(t)
	require.NoError(t, conn.Close(context.Background()))

	f := conn.ExecuteDataQuery(context.Background(), "SELECT 1", nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("future on a closed connection should already be done")
	}
}

func TestConnection_SessionFailurePassesThrough(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("constraint violation")
	conn, fs := newTestConnection(t)
	require.NoError(t, conn.BeginTransaction(ctx))

	fs.execErr = boom
	err := await(t, conn, "INSERT INTO t VALUES (1)")
	require.Equal(t, boom, err)
	require.Equal(t, state.InTransaction, conn.State())
	require.Equal(t, "tx-1", conn.TransactionID())
}

func TestConnection_CommitFailureKeepsTransaction(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("aborted")
	conn, fs := newTestConnection(t)
	require.NoError(t, conn.BeginTransaction(ctx))

	fs.commitErr = boom
	require.Equal(t, boom, conn.CommitTransaction(ctx))
	require.Equal(t, "tx-1", conn.TransactionID())

	require.NoError(t, conn.RollbackTransaction(ctx))
	require.True(t, conn.IsAutoCommit())
}

func TestConnection_CloseReturnsSessionError(t *testing.T) {
	boom := errors.New("close failed")
	fs := &fakeSession{closeErr: boom}
	conn, err := NewConnectionFactory(&fakeProvider{session: fs}).Create(context.Background())
	require.NoError(t, err)

	require.ErrorIs(t, conn.Close(context.Background()), boom)
	require.Equal(t, state.Closed, conn.State())
}
