package analytics

import "fmt"

// ComputationError reports a malformed input shape, e.g. a snapshot with no
// status. It is fatal for the request: retrying without fixing the input
// cannot succeed.
type ComputationError struct {
	RowID  int
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("analytics: malformed snapshot row %d: %s", e.RowID, e.Reason)
}
