package kreuzberg

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/kreuzberg-go/kreuzberg/internal/cache"
	"github.com/kreuzberg-go/kreuzberg/internal/domain"
	"github.com/kreuzberg-go/kreuzberg/internal/pipeline"
	"github.com/kreuzberg-go/kreuzberg/internal/port"
)

// Future is returned by the async entry points (§9 "async/sync duality"):
// both variants share the extract implementation below, the async ones just
// run it on a goroutine and hand back a handle to wait on.
type Future struct {
	done   chan struct{}
	result *ExtractionResult
	err    error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(result *ExtractionResult, err error) {
	f.result, f.err = result, err
	close(f.done)
}

// Wait blocks until the extraction completes or ctx is cancelled, whichever
// comes first.
func (f *Future) Wait(ctx context.Context) (*ExtractionResult, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func runAsync(ctx context.Context, fn func() (*ExtractionResult, error)) *Future {
	fut := newFuture()
	go func() {
		result, err := fn()
		fut.resolve(result, err)
	}()
	return fut
}

// ExtractFileSync reads path and extracts it synchronously (§4.1).
func (c *Context) ExtractFileSync(ctx context.Context, path, mimeHint string, cfg ExtractionConfig) (*ExtractionResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.KindIO, err, "read %s", path)
	}
	return c.extract(ctx, port.Source{Path: path}, content, mimeHint, cfg)
}

// ExtractFile is ExtractFileSync's async counterpart: both share the same
// extract implementation, this one simply runs it on an internal goroutine.
func (c *Context) ExtractFile(ctx context.Context, path, mimeHint string, cfg ExtractionConfig) *Future {
	return runAsync(ctx, func() (*ExtractionResult, error) {
		return c.ExtractFileSync(ctx, path, mimeHint, cfg)
	})
}

// ExtractBytesSync extracts an in-memory buffer synchronously (§4.1).
func (c *Context) ExtractBytesSync(ctx context.Context, data []byte, mimeHint string, cfg ExtractionConfig) (*ExtractionResult, error) {
	return c.extract(ctx, port.Source{Bytes: data}, data, mimeHint, cfg)
}

// ExtractBytes is ExtractBytesSync's async counterpart.
func (c *Context) ExtractBytes(ctx context.Context, data []byte, mimeHint string, cfg ExtractionConfig) *Future {
	return runAsync(ctx, func() (*ExtractionResult, error) {
		return c.ExtractBytesSync(ctx, data, mimeHint, cfg)
	})
}

// extract is the single implementation shared by every sync/async entry
// point (§9 "do not duplicate logic"). src carries the original Path (for
// mime-by-extension and error messages); content is already-read bytes, so
// every extractor is invoked with a Source wrapping Bytes, never a path it
// would have to open itself.
func (c *Context) extract(ctx context.Context, src port.Source, content []byte, mimeHint string, cfg ExtractionConfig) (*ExtractionResult, error) {
	mimeType, err := resolveMime(mimeHint, src.Path, content)
	if err != nil {
		return nil, err
	}

	logger := c.Logger.With("mime_type", mimeType, "path", src.Path)

	var fingerprint string
	if cfg.UseCache {
		fp, ferr := cache.Fingerprint(content, cfg)
		if ferr != nil {
			logger.Debug("fingerprint computation failed, skipping cache", "error", ferr)
		} else {
			fingerprint = fp
			if result, ok := c.Cache.Get(fingerprint); ok {
				c.Evictor.Touch(fingerprint)
				logger.Debug("cache hit", "fingerprint", fingerprint)
				return result, nil
			}
		}
	}

	extractor, err := c.Extractors.Resolve(mimeType)
	if err != nil {
		return nil, err
	}

	run := func() (*ExtractionResult, error) {
		return c.runExtraction(ctx, extractor, port.Source{Path: src.Path, Bytes: content, Mime: mimeType}, cfg)
	}

	var result *ExtractionResult
	if fingerprint != "" {
		result, err = c.Coalescer.Do(fingerprint, run)
	} else {
		result, err = run()
	}
	if err != nil {
		return nil, err
	}

	if fingerprint != "" {
		if perr := c.Cache.Put(fingerprint, result); perr != nil {
			// Cache writes are best-effort (§4.4 guarantees): log and move on.
			logPluginError(logger, "cache write failed", perr)
		} else {
			c.Evictor.Touch(fingerprint)
		}
	}

	return result, nil
}

// runExtraction invokes extractor and then runs the full pipeline (§4.3) over
// its result.
func (c *Context) runExtraction(ctx context.Context, extractor port.Extractor, src port.Source, cfg ExtractionConfig) (*ExtractionResult, error) {
	result, err := extractor.Extract(ctx, src, cfg)
	if err != nil {
		return nil, err
	}

	stages := pipeline.Stages{
		PostProcessors: c.PostProcessors,
		Validators:     c.Validators,
	}
	if err := pipeline.Run(ctx, result, cfg, stages); err != nil {
		return nil, err
	}
	return result, nil
}

// BatchExtractFileSync extracts every path, preserving input order, on a
// pool bounded by cfg.MaxConcurrentExtractions (§4.1, §5). A failing item
// yields its error in that slot rather than aborting the batch.
func (c *Context) BatchExtractFileSync(ctx context.Context, paths []string, mimeHint string, cfg ExtractionConfig) []BatchResult {
	cfg = effectiveConfig(cfg)
	results := make([]BatchResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrentExtractions)

	for i, path := range paths {
		g.Go(func() error {
			result, err := c.ExtractFileSync(gctx, path, mimeHint, cfg)
			results[i] = BatchResult{Result: result, Err: err}
			return nil // per-item errors are reported in place, not propagated
		})
	}
	_ = g.Wait()
	return results
}

// BatchExtractFile is BatchExtractFileSync's async counterpart.
func (c *Context) BatchExtractFile(ctx context.Context, paths []string, mimeHint string, cfg ExtractionConfig) *BatchFuture {
	return runBatchAsync(func() []BatchResult {
		return c.BatchExtractFileSync(ctx, paths, mimeHint, cfg)
	})
}

// BytesSource pairs an in-memory buffer with its MIME type for batch bytes
// extraction.
type BytesSource struct {
	Bytes []byte
	Mime  string
}

// BatchExtractBytesSync extracts every source, preserving input order, on a
// pool bounded by cfg.MaxConcurrentExtractions.
func (c *Context) BatchExtractBytesSync(ctx context.Context, sources []BytesSource, cfg ExtractionConfig) []BatchResult {
	cfg = effectiveConfig(cfg)
	results := make([]BatchResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrentExtractions)

	for i, src := range sources {
		g.Go(func() error {
			result, err := c.ExtractBytesSync(gctx, src.Bytes, src.Mime, cfg)
			results[i] = BatchResult{Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// BatchExtractBytes is BatchExtractBytesSync's async counterpart.
func (c *Context) BatchExtractBytes(ctx context.Context, sources []BytesSource, cfg ExtractionConfig) *BatchFuture {
	return runBatchAsync(func() []BatchResult {
		return c.BatchExtractBytesSync(ctx, sources, cfg)
	})
}

// BatchResult is one slot of a batch extraction's order-preserving output.
type BatchResult struct {
	Result *ExtractionResult
	Err    error
}

// BatchFuture is the async handle returned by the Batch* non-Sync entry points.
type BatchFuture struct {
	done    chan struct{}
	results []BatchResult
}

func runBatchAsync(fn func() []BatchResult) *BatchFuture {
	fut := &BatchFuture{done: make(chan struct{})}
	go func() {
		fut.results = fn()
		close(fut.done)
	}()
	return fut
}

// Wait blocks until every item in the batch completes or ctx is cancelled.
func (f *BatchFuture) Wait(ctx context.Context) ([]BatchResult, error) {
	select {
	case <-f.done:
		return f.results, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Package-level convenience wrappers delegating to DefaultContext, so callers
// who never need a custom Context (no extra plugins, default cache dir) can
// call straight into the package.

func ExtractFileSync(ctx context.Context, path, mimeHint string, cfg ExtractionConfig) (*ExtractionResult, error) {
	return DefaultContext().ExtractFileSync(ctx, path, mimeHint, cfg)
}

func ExtractFile(ctx context.Context, path, mimeHint string, cfg ExtractionConfig) *Future {
	return DefaultContext().ExtractFile(ctx, path, mimeHint, cfg)
}

func ExtractBytesSync(ctx context.Context, data []byte, mimeHint string, cfg ExtractionConfig) (*ExtractionResult, error) {
	return DefaultContext().ExtractBytesSync(ctx, data, mimeHint, cfg)
}

func ExtractBytes(ctx context.Context, data []byte, mimeHint string, cfg ExtractionConfig) *Future {
	return DefaultContext().ExtractBytes(ctx, data, mimeHint, cfg)
}

func BatchExtractFileSync(ctx context.Context, paths []string, mimeHint string, cfg ExtractionConfig) []BatchResult {
	return DefaultContext().BatchExtractFileSync(ctx, paths, mimeHint, cfg)
}

func BatchExtractFile(ctx context.Context, paths []string, mimeHint string, cfg ExtractionConfig) *BatchFuture {
	return DefaultContext().BatchExtractFile(ctx, paths, mimeHint, cfg)
}

func BatchExtractBytesSync(ctx context.Context, sources []BytesSource, cfg ExtractionConfig) []BatchResult {
	return DefaultContext().BatchExtractBytesSync(ctx, sources, cfg)
}

func BatchExtractBytes(ctx context.Context, sources []BytesSource, cfg ExtractionConfig) *BatchFuture {
	return DefaultContext().BatchExtractBytes(ctx, sources, cfg)
}
