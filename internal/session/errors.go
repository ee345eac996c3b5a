package session

import "errors"

// Every command failure wraps one of these. None of them ends the loop.
var (
	// ErrUsage is a missing or malformed command argument.
	ErrUsage = errors.New("usage")
	// ErrNotFound is a replay or delete of a tag that was never saved.
	ErrNotFound = errors.New("no conversation found with that tag")
	// ErrExtraction means open could not get any text from its source.
	ErrExtraction = errors.New("could not read any text")
	// ErrService is a failed completion call. The user message stays in
	// the conversation so the turn can be retried.
	ErrService = errors.New("completion failed")
	// ErrStorage is an unreadable, corrupt or unwritable replay file.
	ErrStorage = errors.New("replay storage")
)
