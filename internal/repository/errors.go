package repository

import "errors"

var (
	// ErrNotFound is returned when a requested tariff plan does not exist.
	ErrNotFound = errors.New("entity not found")
)
