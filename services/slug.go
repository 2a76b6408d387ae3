package services

import (
	"context"
	"fmt"
	"strings"
)

// maxSlugAttempts bounds the collision loop. The observed upstream behavior
// is unbounded, which turns many identical titles into an availability
// problem, so the loop fails with ErrSlugExhausted past this point.
const maxSlugAttempts = 1000

// Slugify derives the base slug from a title: ASCII letters and digits are
// kept (lowercased), runs of spaces collapse to a single hyphen, everything
// else is dropped. Returns "" for titles with no usable characters.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ':
			pendingHyphen = true
		}
	}
	return b.String()
}

type slugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// resolveSlug returns the first candidate at or after attempt `from` that is
// not taken: base for attempt 1, base-2, base-3, and so on. The returned
// attempt number lets the caller resume past a candidate that lost an insert
// race, guaranteeing forward progress.
//
// The existence pre-check is advisory only; the unique index on posts.slug
// is the authority and the caller must retry on duplicate-key insert errors.
func resolveSlug(ctx context.Context, store slugChecker, title string, from int) (string, int, error) {
	base := Slugify(title)
	if base == "" {
		return "", 0, ErrInvalidTitle
	}
	if from < 1 {
		from = 1
	}

	for attempt := from; attempt <= maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}
		exists, err := store.SlugExists(ctx, candidate)
		if err != nil {
			return "", 0, err
		}
		if !exists {
			return candidate, attempt, nil
		}
	}
	return "", 0, ErrSlugExhausted
}
