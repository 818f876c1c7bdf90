package registry

import (
	"context"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
	"github.com/kreuzberg-go/kreuzberg/internal/port"
)

// OCRBackendRegistry looks up an OCRBackend by name, or by language support
// when the caller has no preferred backend.
type OCRBackendRegistry struct {
	b *base[port.OCRBackend]
}

func NewOCRBackendRegistry() *OCRBackendRegistry {
	return &OCRBackendRegistry{b: newBase[port.OCRBackend]()}
}

func (r *OCRBackendRegistry) Register(ctx context.Context, o port.OCRBackend) error {
	return r.b.register(ctx, o)
}

func (r *OCRBackendRegistry) Remove(ctx context.Context, name string) error {
	return r.b.remove(ctx, name)
}

func (r *OCRBackendRegistry) List() []string { return r.b.list() }

func (r *OCRBackendRegistry) ShutdownAll(ctx context.Context) error {
	return r.b.shutdownAll(ctx)
}

// Get returns the backend registered under name.
func (r *OCRBackendRegistry) Get(name string) (port.OCRBackend, error) {
	for _, o := range r.b.snapshot() {
		if o.Name() == name {
			return o, nil
		}
	}
	var zero port.OCRBackend
	return zero, domain.NewError(domain.KindMissingDependency, "no OCR backend registered under name %q", name)
}

// ResolveForLanguage returns the first registered backend (registration
// order) that supports tag.
func (r *OCRBackendRegistry) ResolveForLanguage(tag string) (port.OCRBackend, error) {
	for _, o := range r.b.snapshot() {
		if o.SupportsLanguage(tag) {
			return o, nil
		}
	}
	var zero port.OCRBackend
	return zero, domain.NewError(domain.KindMissingDependency, "no OCR backend supports language %q", tag)
}
