package dto

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("errRecordNotFound")
	ErrAlreadyExists    = errors.New("errAlreadyExists")
	ErrInvalidReference = errors.New("invalid manager reference")
)

// DuplicateError names the unique field a mutation collided on.
// errors.Is(err, ErrAlreadyExists) matches it.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for field '%s'", e.Field)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrAlreadyExists
}
