package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	// ErrStaleWrite means the caller edited an older version of the record.
	ErrStaleWrite = errors.New("record was modified by someone else")
)
