package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// recencyCapacity bounds how many fingerprints the in-memory recency tracker
// remembers; it is deliberately much larger than any realistic working set so
// it never evicts a fingerprint from its own bookkeeping before Sweep gets a
// chance to evict the matching disk artifact.
const recencyCapacity = 1 << 20

// Evictor tracks access recency in memory (via hashicorp/golang-lru, used
// here purely as an ordered recency structure rather than as the cache
// itself) and sweeps the backing DiskCache's oldest entries once the
// directory exceeds a size ceiling.
type Evictor struct {
	disk *DiskCache

	mu      sync.Mutex
	recency *lru.Cache
}

func NewEvictor(disk *DiskCache) *Evictor {
	c, _ := lru.New(recencyCapacity) // error only on non-positive size
	return &Evictor{disk: disk, recency: c}
}

// Touch marks fingerprint as most-recently-used.
func (e *Evictor) Touch(fingerprint string) {
	e.mu.Lock()
	e.recency.Add(fingerprint, struct{}{})
	e.mu.Unlock()
}

// Sweep removes least-recently-used artifacts until the disk cache's total
// size is at most ceiling bytes, or until recency bookkeeping is exhausted
// (an entry with no recency record, e.g. written by a prior process, is left
// alone rather than guessed at).
func (e *Evictor) Sweep(ceiling int64) error {
	stats, err := e.disk.Stats()
	if err != nil {
		return err
	}
	if stats.TotalSize <= ceiling {
		return nil
	}

	e.mu.Lock()
	oldest := e.recency.Keys() // oldest first
	e.mu.Unlock()

	for _, key := range oldest {
		if stats.TotalSize <= ceiling {
			break
		}
		fingerprint := key.(string)
		m, err := e.disk.readMeta(fingerprint)
		if err != nil {
			continue
		}
		if err := removeEntry(e.disk, fingerprint); err != nil {
			continue
		}
		stats.TotalSize -= m.Size
		stats.Entries--

		e.mu.Lock()
		e.recency.Remove(fingerprint)
		e.mu.Unlock()
	}
	return nil
}

func removeEntry(disk *DiskCache, fingerprint string) error {
	if err := removeIfExists(disk.artifactPath(fingerprint)); err != nil {
		return err
	}
	return removeIfExists(disk.metaPath(fingerprint))
}
