package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

func TestEvictorSweepsOldestFirst(t *testing.T) {
	disk := NewDiskCache(t.TempDir())
	evictor := NewEvictor(disk)

	big := strings.Repeat("x", 1000)
	for _, fp := range []string{"one", "two", "three"} {
		require.NoError(t, disk.Put(fp, &domain.ExtractionResult{Content: big}))
		evictor.Touch(fp)
	}

	stats, err := disk.Stats()
	require.NoError(t, err)
	require.NoError(t, evictor.Sweep(stats.TotalSize/2))

	_, oneStillThere := disk.Get("one")
	_, threeStillThere := disk.Get("three")
	assert.False(t, oneStillThere, "oldest entry should have been evicted first")
	assert.True(t, threeStillThere, "most recently touched entry should survive")
}

func TestEvictorNoopUnderCeiling(t *testing.T) {
	disk := NewDiskCache(t.TempDir())
	evictor := NewEvictor(disk)
	require.NoError(t, disk.Put("fp", &domain.ExtractionResult{Content: "small"}))
	evictor.Touch("fp")

	require.NoError(t, evictor.Sweep(1<<30))

	_, ok := disk.Get("fp")
	assert.True(t, ok)
}
