package spi

import "errors"

// Errors raised locally, before any interaction with the session.
// Session failures are never wrapped in one of these; they reach the caller as returned.
var (
	// ErrUnsupportedType reports a declared type with no native kind (e.g. Collection).
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrTypeMismatch reports a value whose Go type is not accepted by its declared kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnresolvedType reports a bare value whose Go type maps to no kind.
	ErrUnresolvedType = errors.New("unresolved type")
	// ErrConnectionClosed reports an operation attempted after Close.
	ErrConnectionClosed = errors.New("connection is closed")
	// ErrTransactionActive reports a begin while a transaction is already open.
	ErrTransactionActive = errors.New("transaction already active")
)
