package core

import "fmt"

// StorageError reports a backing file that could not be read or written.
// It is fatal to the operation that triggered it and is never retried.
type StorageError struct {
	Op   string // "load", "persist", "create", "save", "list"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
