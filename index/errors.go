package index

import "fmt"

// SetupError indicates that index registration failed for a reason other
// than the index already existing.
type SetupError struct {
	// Name is the index definition that failed to register.
	Name string

	// Err is the underlying storage error.
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("index setup failed for %q: %v", e.Name, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
