package cache

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

func TestDiskCachePutGet(t *testing.T) {
	disk := NewDiskCache(t.TempDir())
	result := &domain.ExtractionResult{Content: "hello world", MimeType: "text/plain"}

	require.NoError(t, disk.Put("fp-1", result))

	got, ok := disk.Get("fp-1")
	require.True(t, ok)
	assert.Equal(t, result.Content, got.Content)
	assert.Equal(t, result.MimeType, got.MimeType)
}

func TestDiskCacheMissOnUnknownKey(t *testing.T) {
	disk := NewDiskCache(t.TempDir())
	_, ok := disk.Get("missing")
	assert.False(t, ok)
}

func TestDiskCacheCorruptArtifactDegradesToMiss(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir)
	require.NoError(t, disk.Put("fp-1", &domain.ExtractionResult{Content: "ok"}))

	require.NoError(t, atomicWrite(disk.artifactPath("fp-1"), []byte("not json")))

	_, ok := disk.Get("fp-1")
	assert.False(t, ok)

	_, err := os.Stat(disk.artifactPath("fp-1"))
	assert.True(t, os.IsNotExist(err), "a corrupt artifact must be evicted, not just skipped")
}

func TestDiskCacheStatsAndClear(t *testing.T) {
	disk := NewDiskCache(t.TempDir())
	require.NoError(t, disk.Put("a", &domain.ExtractionResult{Content: "a"}))
	require.NoError(t, disk.Put("b", &domain.ExtractionResult{Content: "b"}))

	stats, err := disk.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Greater(t, stats.TotalSize, int64(0))

	require.NoError(t, disk.Clear())
	stats, err = disk.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
}

func TestFingerprintIgnoresUseCache(t *testing.T) {
	cfg1 := domain.ExtractionConfig{UseCache: true, ForceOCR: true}
	cfg2 := domain.ExtractionConfig{ForceOCR: true, UseCache: false}

	fp1, err := Fingerprint([]byte("content"), cfg1)
	require.NoError(t, err)
	fp2, err := Fingerprint([]byte("content"), cfg2)
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2, "use_cache must not affect the fingerprint")
}

func TestFingerprintStableAcrossMaxConcurrentExtractions(t *testing.T) {
	cfg1 := domain.ExtractionConfig{MaxConcurrentExtractions: 0}
	cfg2 := domain.ExtractionConfig{MaxConcurrentExtractions: 8}

	fp1, err := Fingerprint([]byte("content"), cfg1)
	require.NoError(t, err)
	fp2, err := Fingerprint([]byte("content"), cfg2)
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2, "a scheduling knob set by effectiveConfig's GOMAXPROCS default must not affect the fingerprint")
}

func TestFingerprintChangesWithContent(t *testing.T) {
	cfg := domain.ExtractionConfig{}
	fp1, err := Fingerprint([]byte("content A"), cfg)
	require.NoError(t, err)
	fp2, err := Fingerprint([]byte("content B"), cfg)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp2)
}
