// Package results defines the operation result envelope returned by every
// application service. Business rejections travel in Failure so callers can
// render them; Error is reserved for infrastructure faults.
package results

// OperationResult carries the outcome of a single service operation.
// Exactly one of Success or Failure is set on a normal return; Error is set
// alongside Failure when the rejection originated from an error value.
type OperationResult struct {
	Success interface{}
	Failure interface{}
	Error   error
}

// SuccessResult wraps a success payload.
func SuccessResult(payload interface{}) OperationResult {
	return OperationResult{Success: payload}
}

// FailureResult wraps a failure payload together with its originating error.
func FailureResult(payload interface{}, err error) OperationResult {
	return OperationResult{Failure: payload, Error: err}
}

// IsSuccess reports whether the operation produced a success payload.
func (r OperationResult) IsSuccess() bool {
	return r.Success != nil && r.Failure == nil
}
