package ydbc

import "github.com/TechXTT/ydbc/pkg/session"

// Result is the outcome of one executed statement.
type Result struct {
	res *session.DataQueryResult
}

// ResultSets returns the row sets in the order the session produced them.
func (r *Result) ResultSets() []session.ResultSet {
	if r.res == nil {
		return nil
	}
	return r.res.ResultSets
}

// RowsUpdated returns the number of rows the statement changed, when the
// session reports it.
func (r *Result) RowsUpdated() int64 {
	if r.res == nil {
		return 0
	}
	return r.res.RowsAffected
}
