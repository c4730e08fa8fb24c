package domain

import "errors"

var (
	// ErrInvalidInput marks malformed caller input, e.g. a video URL
	// without an extractable id.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig marks configuration rejected before any
	// processing starts, e.g. chunk overlap >= chunk size.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUpstream marks a failure of an external collaborator: the
	// transcript source, embedding service, vector store or generator.
	ErrUpstream = errors.New("upstream service error")
)
