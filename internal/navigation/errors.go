package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrNoNext is returned by GoForward when there is no forward history.
	ErrNoNext = errors.New("no next page in history")

	// ErrNoPrevious is returned by GoBack when there is no backward history.
	ErrNoPrevious = errors.New("no previous page in history")
)

// ResolutionError reports input that does not form an address under any
// candidate interpretation.
type ResolutionError struct {
	Input string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve %q to an address", e.Input)
}

// NavigationError is returned by Visit. Cause is either a *ResolutionError
// or the error reported by the Prober.
type NavigationError struct {
	Input string
	Cause error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("could not load %q: %v", e.Input, e.Cause)
}

func (e *NavigationError) Unwrap() error {
	return e.Cause
}

// UnknownBookmarkError is returned when a bookmark name is empty or not
// registered.
type UnknownBookmarkError struct {
	Name string
}

func (e *UnknownBookmarkError) Error() string {
	if e.Name == "" {
		return "bookmark name is empty"
	}
	return fmt.Sprintf("no bookmark named %q", e.Name)
}
