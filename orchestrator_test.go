package kreuzberg

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreuzberg-go/kreuzberg/internal/pptx"
)

func buildTestPPTX(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	rels, _ := zw.Create("ppt/_rels/presentation.xml.rels")
	_, _ = rels.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
</Relationships>`))

	slide, _ := zw.Create("ppt/slides/slide1.xml")
	_, _ = slide.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:sp><p:spPr><a:xfrm><a:off x="0" y="0"/></a:xfrm></p:spPr>
      <p:txBody><a:p><a:r><a:t>Integration Test Slide</a:t></a:r></a:p></p:txBody></p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`))

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c := NewContext(t.TempDir(), nil)
	require.NoError(t, c.RegisterExtractor(context.Background(), pptx.New()))
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestExtractBytesSyncEndToEnd(t *testing.T) {
	c := newTestContext(t)
	mime := "application/vnd.openxmlformats-officedocument.presentationml.presentation"

	result, err := c.ExtractBytesSync(context.Background(), buildTestPPTX(t), mime, ExtractionConfig{})
	require.NoError(t, err)
	assert.Contains(t, result.Content, "Integration Test Slide")
}

func TestExtractBytesSyncUnsupportedMimeFails(t *testing.T) {
	c := newTestContext(t)
	_, err := c.ExtractBytesSync(context.Background(), []byte("plain text, no registered extractor"), "application/x-made-up", ExtractionConfig{})
	require.Error(t, err)
}

func TestExtractBytesSyncCachesAcrossCalls(t *testing.T) {
	c := newTestContext(t)
	mime := "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	content := buildTestPPTX(t)
	cfg := ExtractionConfig{UseCache: true}

	first, err := c.ExtractBytesSync(context.Background(), content, mime, cfg)
	require.NoError(t, err)

	second, err := c.ExtractBytesSync(context.Background(), content, mime, cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Content, second.Content)
	require.NotNil(t, second.Metadata.Format.Pptx, "a cache hit must round-trip the format metadata subtree, not drop it")
	assert.Equal(t, first.Metadata.Format.Pptx, second.Metadata.Format.Pptx)

	stats, err := c.Cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries, "identical content+config must fingerprint to a single cache entry")
}

func TestExtractFileAsyncWaitsForCompletion(t *testing.T) {
	c := newTestContext(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pptx")
	require.NoError(t, os.WriteFile(path, buildTestPPTX(t), 0o644))

	fut := c.ExtractFile(context.Background(), path, "", ExtractionConfig{})
	result, err := fut.Wait(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.Content, "Integration Test Slide")
}

func TestExtractFileSyncMissingFileFails(t *testing.T) {
	c := newTestContext(t)
	_, err := c.ExtractFileSync(context.Background(), filepath.Join(t.TempDir(), "missing.pptx"), "", ExtractionConfig{})
	require.Error(t, err)
}

func TestBatchExtractBytesSyncPreservesOrderAndIsolatesErrors(t *testing.T) {
	c := newTestContext(t)
	mime := "application/vnd.openxmlformats-officedocument.presentationml.presentation"

	sources := []BytesSource{
		{Bytes: buildTestPPTX(t), Mime: mime},
		{Bytes: []byte("not a pptx"), Mime: "application/x-made-up"},
		{Bytes: buildTestPPTX(t), Mime: mime},
	}

	results := c.BatchExtractBytesSync(context.Background(), sources, ExtractionConfig{})
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	assert.Contains(t, results[0].Result.Content, "Integration Test Slide")

	require.Error(t, results[1].Err, "an unsupported mime in slot 1 must not abort the batch")
	assert.Nil(t, results[1].Result)

	require.NoError(t, results[2].Err)
	assert.Contains(t, results[2].Result.Content, "Integration Test Slide")
}

func TestBatchExtractFileAsyncWaitsForCompletion(t *testing.T) {
	c := newTestContext(t)
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.pptx")
	pathB := filepath.Join(dir, "b.pptx")
	require.NoError(t, os.WriteFile(pathA, buildTestPPTX(t), 0o644))
	require.NoError(t, os.WriteFile(pathB, buildTestPPTX(t), 0o644))

	fut := c.BatchExtractFile(context.Background(), []string{pathA, pathB}, "", ExtractionConfig{})
	results, err := fut.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Contains(t, r.Result.Content, "Integration Test Slide")
	}
}

func TestContextCloseIsIdempotent(t *testing.T) {
	c := newTestContext(t)
	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
}

func TestDefaultContextHasPPTXRegistered(t *testing.T) {
	mime := "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	result, err := ExtractBytesSync(context.Background(), buildTestPPTX(t), mime, ExtractionConfig{})
	require.NoError(t, err)
	assert.Contains(t, result.Content, "Integration Test Slide")
}
