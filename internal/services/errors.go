package services

import "errors"

var (
	// ErrCatNotFound indicates the requested cat does not exist.
	ErrCatNotFound = errors.New("cat service: cat not found")
	// ErrSeedAborted wraps any failure that stopped an import before commit.
	ErrSeedAborted = errors.New("seed service: import aborted")
)
