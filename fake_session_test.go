package ydbc

import (
	"context"
	"fmt"
	"sync"

	"github.com/TechXTT/ydbc/pkg/parameter"
	"github.com/TechXTT/ydbc/pkg/session"
)

type call struct {
	Op     string
	SQL    string
	Tx     string
	Params []string
}

// fakeSession records every call and hands out sequential transaction ids.
type fakeSession struct {
	mu     sync.Mutex
	calls  []call
	nextID int

	execErr   error
	beginErr  error
	beginID   *string
	commitErr error
	closeErr  error
}

func (f *fakeSession) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeSession) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeSession) ExecuteDataQuery(ctx context.Context, sql string, tx session.TxControl, params *parameter.Params) (*session.DataQueryResult, error) {
	f.record(call{Op: "execute", SQL: sql, Tx: tx.ID(), Params: params.Names()})
	if f.execErr != nil {
		return nil, f.execErr
	}
	return &session.DataQueryResult{
		ResultSets:   []session.ResultSet{{Columns: []string{"n"}, Rows: [][]any{{int64(1)}}}},
		RowsAffected: 1,
	}, nil
}

func (f *fakeSession) BeginTransaction(ctx context.Context) (string, error) {
	f.record(call{Op: "begin"})
	if f.beginErr != nil {
		return "", f.beginErr
	}
	if f.beginID != nil {
		return *f.beginID, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return fmt.Sprintf("tx-%d", f.nextID), nil
}

func (f *fakeSession) Commit(ctx context.Context, txID string) error {
	f.record(call{Op: "commit", Tx: txID})
	return f.commitErr
}

func (f *fakeSession) Rollback(ctx context.Context, txID string) error {
	f.record(call{Op: "rollback", Tx: txID})
	return nil
}

func (f *fakeSession) Close(ctx context.Context) error {
	f.record(call{Op: "close"})
	return f.closeErr
}

type fakeProvider struct {
	session *fakeSession
	err     error
}

func (p *fakeProvider) CreateSession(ctx context.Context) (session.Session, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}
