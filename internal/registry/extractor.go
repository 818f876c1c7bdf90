package registry

import (
	"context"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
	"github.com/kreuzberg-go/kreuzberg/internal/port"
)

// ExtractorRegistry dispatches a Source to the highest-priority registered
// Extractor that claims its MIME type, ties broken by registration order.
type ExtractorRegistry struct {
	b *base[port.Extractor]
}

func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{b: newBase[port.Extractor]()}
}

func (r *ExtractorRegistry) Register(ctx context.Context, e port.Extractor) error {
	return r.b.register(ctx, e)
}

func (r *ExtractorRegistry) Remove(ctx context.Context, name string) error {
	return r.b.remove(ctx, name)
}

func (r *ExtractorRegistry) List() []string { return r.b.list() }

func (r *ExtractorRegistry) ShutdownAll(ctx context.Context) error {
	return r.b.shutdownAll(ctx)
}

// Resolve returns the extractor that should handle mimeType. Candidates are
// sorted by descending priority (stable, so insertion order breaks ties)
// before the first Claims match wins.
func (r *ExtractorRegistry) Resolve(mimeType string) (port.Extractor, error) {
	candidates := r.b.snapshot()
	sortByPriorityDesc(candidates, func(e port.Extractor) int { return e.Priority() })
	for _, e := range candidates {
		if e.Claims(mimeType) {
			return e, nil
		}
	}
	var zero port.Extractor
	return zero, domain.NewError(domain.KindUnsupportedFormat, "no extractor registered for mime type %q", mimeType)
}
