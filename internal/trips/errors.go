package trips

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the data path does not resolve to a file.
	ErrFileNotFound = errors.New("data file not found")

	// ErrLoadFailure covers every other I/O or parse fault while loading.
	ErrLoadFailure = errors.New("failed to load data")

	// ErrMissingColumn is returned by Service when a view needs a column the table lacks.
	ErrMissingColumn = errors.New("required column not found")
)

// LoadError reports a failed load of a data file.
// Kind is ErrFileNotFound or ErrLoadFailure; Err is the underlying cause.
type LoadError struct {
	Path string
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(path string, err error) error {
	return &LoadError{Path: path, Kind: ErrFileNotFound, Err: err}
}

func loadFailure(path string, err error) error {
	return &LoadError{Path: path, Kind: ErrLoadFailure, Err: err}
}

func missingColumn(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, name)
}
