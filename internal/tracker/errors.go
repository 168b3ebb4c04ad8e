package tracker

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTitle = errors.New("title cannot be empty")
	ErrNotFound     = errors.New("task not found")
	ErrIDsExhausted = errors.New("no task ids left")
)

// NotFoundError names the ID that was looked up. It matches ErrNotFound.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with id %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
