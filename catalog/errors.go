package catalog

import "github.com/dcc-bs/huwise-go/faults"

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}
