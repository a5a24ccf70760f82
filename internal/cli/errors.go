package cli

import "fmt"

// usageError marks a mistake in how the command was invoked. Run maps it
// to exit code 2; every other error exits 1.
type usageError struct {
	msg  string
	hint string
}

func (e usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}
