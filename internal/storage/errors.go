package storage

import "errors"

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyGraded is returned when an attempt has already been graded.
	// Grading is write-once; a second submission leaves the stored result
	// untouched.
	ErrAlreadyGraded = errors.New("attempt already graded")

	// ErrNotOwner is returned when a user references a course, section or
	// attempt that belongs to someone else.
	ErrNotOwner = errors.New("resource belongs to another user")
)
