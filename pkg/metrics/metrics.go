package metrics

import "github.com/prometheus/client_golang/prometheus"

// Label constants.
const (
	LblState  = "state"
	LblOp     = "op"
	LblResult = "result"
	LblReason = "reason"

	LblBegin    = "begin"
	LblCommit   = "commit"
	LblRollback = "rollback"

	opSucc   = "ok"
	opFailed = "err"
)

var (
	// StatementCounter counts statements dispatched, by connection state.
	StatementCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ydbc",
			Subsystem: "connection",
			Name:      "statements_total",
			Help:      "Counter of statements dispatched by connection state.",
		}, []string{LblState})

	// TransactionCounter counts transaction control operations.
	TransactionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ydbc",
			Subsystem: "connection",
			Name:      "transactions_total",
			Help:      "Counter of transaction control operations.",
		}, []string{LblOp, LblResult})

	// ResolveFailureCounter counts parameters that could not be resolved.
	ResolveFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ydbc",
			Subsystem: "parameter",
			Name:      "resolve_failures_total",
			Help:      "Counter of parameter resolution failures.",
		}, []string{LblReason})
)

// RetLabel returns "ok" when err == nil and "err" when err != nil.
func RetLabel(err error) string {
	if err == nil {
		return opSucc
	}
	return opFailed
}

// RegisterMetrics registers all collectors with the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(StatementCounter)
	prometheus.MustRegister(TransactionCounter)
	prometheus.MustRegister(ResolveFailureCounter)
}
