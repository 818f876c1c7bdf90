package registry

import (
	"context"

	"github.com/kreuzberg-go/kreuzberg/internal/port"
)

// PostProcessorRegistry holds every registered PostProcessor. The pipeline
// runner asks for a Stage's processors already ordered by descending
// priority, insertion order breaking ties, matching the teacher's
// postprocessors.pipeline Order-based chaining generalized to three stages.
type PostProcessorRegistry struct {
	b *base[port.PostProcessor]
}

func NewPostProcessorRegistry() *PostProcessorRegistry {
	return &PostProcessorRegistry{b: newBase[port.PostProcessor]()}
}

func (r *PostProcessorRegistry) Register(ctx context.Context, p port.PostProcessor) error {
	return r.b.register(ctx, p)
}

func (r *PostProcessorRegistry) Remove(ctx context.Context, name string) error {
	return r.b.remove(ctx, name)
}

func (r *PostProcessorRegistry) List() []string { return r.b.list() }

func (r *PostProcessorRegistry) ShutdownAll(ctx context.Context) error {
	return r.b.shutdownAll(ctx)
}

// ForStage returns every processor registered for stage, descending priority.
func (r *PostProcessorRegistry) ForStage(stage port.ProcessingStage) []port.PostProcessor {
	all := r.b.snapshot()
	matched := make([]port.PostProcessor, 0, len(all))
	for _, p := range all {
		if p.Stage() == stage {
			matched = append(matched, p)
		}
	}
	sortByPriorityDesc(matched, func(p port.PostProcessor) int { return p.Priority() })
	return matched
}
