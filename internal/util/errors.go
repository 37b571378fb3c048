package util

import "errors"

var (
	// ErrDocumentFormat marks bytes that cannot be parsed as a PDF at all.
	ErrDocumentFormat = errors.New("document format error")
	// ErrInvalidInput marks ranking input whose shape is malformed.
	ErrInvalidInput = errors.New("invalid input")
)
