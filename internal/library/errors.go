package library

import "errors"

var (
	// ErrUnavailable means the index could not be loaded or is empty.
	ErrUnavailable = errors.New("case library unavailable")
	// ErrNoMatch means the index loaded but no listing satisfied the criteria.
	ErrNoMatch = errors.New("no case matches the criteria")
	// ErrCaseNotFound means the case id is not in the index.
	ErrCaseNotFound = errors.New("case not found in index")
	// ErrCaseUnreadable means the case is indexed but its file is missing or corrupt.
	ErrCaseUnreadable = errors.New("case file unreadable")
)
