package session

// ResultSet is one set of rows returned by a data query. Row values are
// whatever the session decoded; typed column metadata is not reported.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// DataQueryResult is the outcome of ExecuteDataQuery.
type DataQueryResult struct {
	ResultSets   []ResultSet
	RowsAffected int64
}
