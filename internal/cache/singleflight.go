package cache

import (
	"golang.org/x/sync/singleflight"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// Coalescer deduplicates concurrent extraction requests that share a
// fingerprint: only one of them actually runs fn; the rest wait for and reuse
// its result. Do takes no context, so every caller sharing a fingerprint
// receives the same result or error, including an error returned by an fn
// whose context was cancelled; a waiter's own cancellation is not observed
// separately from the call it joined.
type Coalescer struct {
	group singleflight.Group
}

func NewCoalescer() *Coalescer {
	return &Coalescer{}
}

// Do runs fn for fingerprint, or waits for and returns an in-flight call's
// result if one is already running for the same fingerprint.
func (c *Coalescer) Do(fingerprint string, fn func() (*domain.ExtractionResult, error)) (*domain.ExtractionResult, error) {
	v, err, _ := c.group.Do(fingerprint, func() (any, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ExtractionResult), nil
}
