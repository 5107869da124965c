package services

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrNotActive         = errors.New("customer is not active")
	ErrNotPaused         = errors.New("customer is not paused")
	ErrAlreadyPaused     = errors.New("customer already has an active pause")
	ErrCancelled         = errors.New("customer is cancelled")
	ErrNoAssignedCleaner = errors.New("customer has no assigned cleaner")
	ErrNotCompleted      = errors.New("job has not been completed")
)
