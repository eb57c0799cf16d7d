package cmd

import (
	"encoding/json"
	"io"

	"github.com/dcc-bs/huwise-go/faults"
)

// Exit codes per fault category, stable for scripting.
const (
	exitCodeGeneric    = 1
	exitCodeValidation = 2
	exitCodeNotFound   = 3
	exitCodeAuth       = 4
	exitCodeTimeout    = 5
)

func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return 0
	case faults.IsCategory(err, faults.ValidationError):
		return exitCodeValidation
	case faults.IsCategory(err, faults.NotFoundError):
		return exitCodeNotFound
	case faults.IsCategory(err, faults.AuthError):
		return exitCodeAuth
	case faults.IsCategory(err, faults.TimeoutError):
		return exitCodeTimeout
	default:
		return exitCodeGeneric
	}
}

func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
