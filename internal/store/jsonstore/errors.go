package jsonstore

import (
	"errors"
	"fmt"
)

// ErrCorrupt matches any *CorruptError.
var ErrCorrupt = errors.New("corrupt store")

// CorruptError reports backing-file content that can't be trusted.
// Where is the location inside the document, empty when the file didn't parse.
type CorruptError struct {
	Path  string
	Where string
	Err   error
}

func (e *CorruptError) Error() string {
	loc := ""
	if e.Where != "" {
		loc = " at " + e.Where
	}
	return fmt.Sprintf("%s is corrupt%s: %v (fix the file or delete it to reset)", e.Path, loc, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }
