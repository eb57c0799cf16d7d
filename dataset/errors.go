package dataset

import "github.com/dcc-bs/huwise-go/faults"

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func notFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.NotFoundError, message, cause)
}

func timeoutError(message string, cause error) error {
	return faults.NewTypedError(faults.TimeoutError, message, cause)
}
