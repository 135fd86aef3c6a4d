package services

import (
	"context"
	"errors"
	"fmt"

	"wikiquiz/services/upstream"
)

type GenerationErrorKind string

const (
	KindTimeout          GenerationErrorKind = "timeout"
	KindNotFound         GenerationErrorKind = "not_found"
	KindRateLimited      GenerationErrorKind = "rate_limited"
	KindMalformedContent GenerationErrorKind = "malformed_content"
	KindUnavailable      GenerationErrorKind = "unavailable"
	KindCanceled         GenerationErrorKind = "canceled"
)

// GenerationError is the single failure outcome of a generation run that
// got past validation.
type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("quiz generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown in the failure notification.
func (e *GenerationError) UserMessage() string {
	switch e.Kind {
	case KindTimeout:
		return "The article took too long to process. Please try again."
	case KindNotFound:
		return "We couldn't find that article on Wikipedia."
	case KindRateLimited:
		return "Too many requests right now. Please wait a moment and try again."
	case KindMalformedContent:
		return "The article couldn't be turned into a quiz. Please try a different article."
	case KindCanceled:
		return "Quiz generation was cancelled."
	default:
		return "The quiz service is unavailable right now. Please try again."
	}
}

func classifyGenerationError(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}

	kind := KindUnavailable
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindCanceled
	case errors.Is(err, upstream.ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, upstream.ErrRateLimited):
		kind = KindRateLimited
	case errors.Is(err, upstream.ErrMalformedContent):
		kind = KindMalformedContent
	}
	return &GenerationError{Kind: kind, Err: err}
}
