package kreuzberg

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kreuzberg-go/kreuzberg/internal/cache"
	"github.com/kreuzberg-go/kreuzberg/internal/pptx"
	"github.com/kreuzberg-go/kreuzberg/internal/registry"
)

// defaultCacheDir is the cache directory used when a Context is built without
// an explicit one (§6).
const defaultCacheDir = ".kreuzberg"

// Context bundles every piece of process-wide shared state (§9 "Global
// mutable state") as an explicit, constructible value rather than package
// globals: the four plugin registries, the disk cache and its supporting
// coalescer/evictor, and an injected logger. Methods are safe for concurrent
// use — each registry guards itself with its own reader-writer lock, and the
// cache's own state is either immutable (Dir) or internally synchronized.
type Context struct {
	Extractors     *registry.ExtractorRegistry
	OCRBackends    *registry.OCRBackendRegistry
	PostProcessors *registry.PostProcessorRegistry
	Validators     *registry.ValidatorRegistry

	Cache     *cache.DiskCache
	Coalescer *cache.Coalescer
	Evictor   *cache.Evictor
	Logger    *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewContext builds a Context rooted at cacheDir, with no plugins registered.
// A "" cacheDir falls back to defaultCacheDir. A nil logger falls back to
// slog.Default(), matching worker.NewWorker's cfg.Logger convention.
func NewContext(cacheDir string, logger *slog.Logger) *Context {
	if cacheDir == "" {
		cacheDir = defaultCacheDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	disk := cache.NewDiskCache(cacheDir)
	return &Context{
		Extractors:     registry.NewExtractorRegistry(),
		OCRBackends:    registry.NewOCRBackendRegistry(),
		PostProcessors: registry.NewPostProcessorRegistry(),
		Validators:     registry.NewValidatorRegistry(),
		Cache:          disk,
		Coalescer:      cache.NewCoalescer(),
		Evictor:        cache.NewEvictor(disk),
		Logger:         logger,
	}
}

var (
	defaultContextOnce sync.Once
	defaultContext     *Context
)

// DefaultContext lazily constructs the process-wide Context, pre-registering
// the PPTX extractor. Most callers never construct their own Context; the
// package-level ExtractFileSync/ExtractFile/etc. functions all delegate here.
func DefaultContext() *Context {
	defaultContextOnce.Do(func() {
		defaultContext = NewContext("", nil)
		if err := defaultContext.RegisterExtractor(context.Background(), pptx.New()); err != nil {
			defaultContext.Logger.Error("failed to register default pptx extractor", "error", err)
		}
	})
	return defaultContext
}

// RegisterExtractor registers e, invoking its Initialize.
func (c *Context) RegisterExtractor(ctx context.Context, e Extractor) error {
	return c.Extractors.Register(ctx, e)
}

// RegisterOCRBackend registers o, invoking its Initialize.
func (c *Context) RegisterOCRBackend(ctx context.Context, o OCRBackend) error {
	return c.OCRBackends.Register(ctx, o)
}

// RegisterPostProcessor registers p, invoking its Initialize.
func (c *Context) RegisterPostProcessor(ctx context.Context, p PostProcessor) error {
	return c.PostProcessors.Register(ctx, p)
}

// RegisterValidator registers v, invoking its Initialize.
func (c *Context) RegisterValidator(ctx context.Context, v Validator) error {
	return c.Validators.Register(ctx, v)
}

// Close shuts down every registered plugin across all four registries. Safe
// to call more than once; subsequent calls are no-ops.
func (c *Context) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	record(c.Extractors.ShutdownAll(ctx))
	record(c.OCRBackends.ShutdownAll(ctx))
	record(c.PostProcessors.ShutdownAll(ctx))
	record(c.Validators.ShutdownAll(ctx))
	return firstErr
}

// logPluginError logs a non-nil err at debug level under msg, as slog's
// structured "error" attribute; a nil err is ignored.
func logPluginError(logger *slog.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logger.Debug(msg, "error", err)
}
