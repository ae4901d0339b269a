package store

// Base preparation estimate in minutes, and the penalty per order of
// overflow beyond configured kitchen throughput.
const (
	basePrepMinutes     = 10
	overflowStepMinutes = 5
)

// EstimateETA derives the wait estimate for a newly admitted order from the
// number of orders currently preparing and the configured concurrency
// limit. The estimate degrades linearly once preparation load reaches the
// limit; it is computed once at admission and frozen on the order.
func EstimateETA(preparingCount, maxPreparing int) int {
	overflow := preparingCount - maxPreparing + 1
	if overflow < 0 {
		overflow = 0
	}
	return basePrepMinutes + overflow*overflowStepMinutes
}
