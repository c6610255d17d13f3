package ydbc

import (
	"context"
	"errors"

	"github.com/TechXTT/ydbc/internal/future"
	"github.com/TechXTT/ydbc/pkg/metrics"
	"github.com/TechXTT/ydbc/pkg/parameter"
	"github.com/TechXTT/ydbc/pkg/session"
	"github.com/TechXTT/ydbc/pkg/spi"
)

// Statement is a SQL text plus the named parameters bound to it.
type Statement struct {
	conn   *Connection
	sql    string
	params *parameter.Params
}

// SQL returns the statement text.
func (s *Statement) SQL() string {
	return s.sql
}

// Bind resolves v and binds it to name. Names without a leading '$' get one.
// v may be a bare Go value, a spi.Parameter or a types.Value.
func (s *Statement) Bind(name string, v any) error {
	if err := s.params.Set(name, v); err != nil {
		metrics.ResolveFailureCounter.WithLabelValues(failureReason(err)).Inc()
		return err
	}
	return nil
}

// Params returns the parameters bound so far.
func (s *Statement) Params() *parameter.Params {
	return s.params
}

// Execute runs the statement with the parameters bound at call time.
func (s *Statement) Execute(ctx context.Context) *future.Future[*Result] {
	f := s.conn.ExecuteDataQuery(ctx, s.sql, s.params.Clone())
	return future.Then(f, func(r *session.DataQueryResult) (*Result, error) {
		return &Result{res: r}, nil
	})
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, spi.ErrUnsupportedType):
		return "unsupported"
	case errors.Is(err, spi.ErrTypeMismatch):
		return "mismatch"
	case errors.Is(err, spi.ErrUnresolvedType):
		return "unresolved"
	default:
		return "other"
	}
}
