package ydbc

import (
	"context"
	"strings"

	"github.com/TechXTT/ydbc/internal/future"
)

// StatementSeparator joins batch fragments into one statement.
const StatementSeparator = ";"

// Batch accumulates SQL fragments and executes them as a single statement.
type Batch struct {
	conn       *Connection
	statements []string
}

// Add appends a fragment. Its content is not validated.
func (b *Batch) Add(sql string) *Batch {
	b.statements = append(b.statements, sql)
	return b
}

// SQL returns the fragments joined with StatementSeparator.
func (b *Batch) SQL() string {
	return strings.Join(b.statements, StatementSeparator)
}

// Execute runs the joined statement through the connection's current state.
func (b *Batch) Execute(ctx context.Context) *future.Future[*Result] {
	return b.conn.CreateStatement(b.SQL()).Execute(ctx)
}
