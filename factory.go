package ydbc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/TechXTT/ydbc/pkg/logutil"
	"github.com/TechXTT/ydbc/pkg/session"
)

// Metadata describes the engine behind a factory.
type Metadata struct {
	Name string
}

// ConnectionFactory opens connections, one session each.
type ConnectionFactory struct {
	provider session.Provider
	logger   *zap.Logger
}

// Option configures a ConnectionFactory.
type Option func(*ConnectionFactory)

// WithLogger sets the logger handed to every connection.
func WithLogger(lg *zap.Logger) Option {
	return func(f *ConnectionFactory) {
		f.logger = lg
	}
}

// NewConnectionFactory returns a factory creating sessions from provider.
func NewConnectionFactory(provider session.Provider, opts ...Option) *ConnectionFactory {
	f := &ConnectionFactory{provider: provider}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logutil.Or(f.logger)
	return f
}

// Create opens a session and returns a connection in autocommit mode.
func (f *ConnectionFactory) Create(ctx context.Context) (*Connection, error) {
	s, err := f.provider.CreateSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return newConnection(s, f.logger), nil
}

// Metadata returns the engine description.
func (f *ConnectionFactory) Metadata() Metadata {
	return Metadata{Name: "YDB"}
}
