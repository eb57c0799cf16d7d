package cmd

import (
	"errors"
	"testing"

	"github.com/dcc-bs/huwise-go/faults"
)

func TestCommandTree(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(Dependencies{})

	for _, path := range [][]string{
		{"datasets", "list"},
		{"datasets", "count"},
		{"datasets", "metadata"},
		{"datasets", "query"},
		{"licenses", "update"},
		{"version"},
	} {
		command, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("Find(%v) returned error: %v", path, err)
		}
		if !command.Runnable() {
			t.Fatalf("command %v is not runnable", path)
		}
	}
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "validation", err: faults.NewTypedError(faults.ValidationError, "bad input", nil), want: 2},
		{name: "not_found", err: faults.NewTypedError(faults.NotFoundError, "missing", nil), want: 3},
		{name: "auth", err: faults.NewTypedError(faults.AuthError, "denied", nil), want: 4},
		{name: "timeout", err: faults.NewTypedError(faults.TimeoutError, "expired", nil), want: 5},
		{name: "transport", err: faults.NewTypedError(faults.TransportError, "reset", nil), want: 1},
		{name: "plain", err: errors.New("boom"), want: 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := ExitCodeForError(tc.err); got != tc.want {
				t.Fatalf("expected exit code %d, got %d", tc.want, got)
			}
		})
	}
}
