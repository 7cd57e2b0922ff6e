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

	// ErrReferenceBuild indicates the reference document yielded no
	// recognizable sections. Fatal: an empty dictionary must never be
	// silently accepted downstream.
	ErrReferenceBuild = errors.New("reference build failed")

	// ErrEmptyDataset indicates the ingested record set has no rows
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrQuestionBankTooSmall indicates generation fell short of the
	// configured minimum question count
	ErrQuestionBankTooSmall = errors.New("question bank below minimum size")

	// ErrRetrieverUnavailable indicates the external retriever could not be
	// reached at all (as opposed to a single failed question)
	ErrRetrieverUnavailable = errors.New("retriever unavailable")
)
