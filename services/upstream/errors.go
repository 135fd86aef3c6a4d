// Package upstream holds the failure kinds shared by the collaborators that
// fetch articles and write questions.
package upstream

import "errors"

var (
	ErrNotFound         = errors.New("article not found")
	ErrRateLimited      = errors.New("upstream rate limit exceeded")
	ErrUnavailable      = errors.New("upstream unavailable")
	ErrMalformedContent = errors.New("malformed upstream content")
)
