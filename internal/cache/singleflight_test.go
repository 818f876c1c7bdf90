package cache

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

func TestCoalescerDeduplicatesConcurrentCalls(t *testing.T) {
	c := NewCoalescer()
	var calls int64

	var wg sync.WaitGroup
	results := make([]*domain.ExtractionResult, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := c.Do("same-fingerprint", func() (*domain.ExtractionResult, error) {
				atomic.AddInt64(&calls, 1)
				return &domain.ExtractionResult{Content: "computed once"}, nil
			})
			require.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "fn should run exactly once for concurrent identical fingerprints")
	for _, r := range results {
		assert.Equal(t, "computed once", r.Content)
	}
}
