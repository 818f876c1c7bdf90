package registry

import (
	"context"

	"github.com/kreuzberg-go/kreuzberg/internal/port"
)

// ValidatorRegistry holds every registered Validator, returned in descending
// priority order for the pipeline's first-failure-short-circuits walk (§4.3).
type ValidatorRegistry struct {
	b *base[port.Validator]
}

func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{b: newBase[port.Validator]()}
}

func (r *ValidatorRegistry) Register(ctx context.Context, v port.Validator) error {
	return r.b.register(ctx, v)
}

func (r *ValidatorRegistry) Remove(ctx context.Context, name string) error {
	return r.b.remove(ctx, name)
}

func (r *ValidatorRegistry) List() []string { return r.b.list() }

func (r *ValidatorRegistry) ShutdownAll(ctx context.Context) error {
	return r.b.shutdownAll(ctx)
}

// Ordered returns every registered validator sorted by descending priority.
func (r *ValidatorRegistry) Ordered() []port.Validator {
	all := r.b.snapshot()
	sortByPriorityDesc(all, func(v port.Validator) int { return v.Priority() })
	return all
}
