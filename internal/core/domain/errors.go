package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates the document has no extractable text
	ErrEmptyDocument = errors.New("document has no extractable text")

	// ErrMalformedQuestion indicates the question is empty or not answerable text
	ErrMalformedQuestion = errors.New("malformed question")

	// ErrEmbeddingUnavailable indicates the embedding service could not be reached
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexNotReady indicates the document has not been indexed yet
	ErrIndexNotReady = errors.New("index not ready")

	// ErrBuildInProgress indicates an index build is already running for the document
	ErrBuildInProgress = errors.New("index build already in progress")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates an external service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)
