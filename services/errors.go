package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP statuses; anything else is treated as a storage failure.
var (
	// ErrInvalidTitle means the post title normalized to an empty slug.
	ErrInvalidTitle = errors.New("title has no slug-safe characters")

	// ErrSlugExhausted means the collision loop hit its attempt bound.
	ErrSlugExhausted = errors.New("slug candidates exhausted")

	// ErrAuthorNotFound distinguishes "no such author" from an author with
	// zero posts, which is an empty success.
	ErrAuthorNotFound = errors.New("author not found")

	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrEmptyComment = errors.New("comment is empty")
	ErrInvalidID    = errors.New("invalid id")
)
