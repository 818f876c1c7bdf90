// Package registry implements the four typed plugin registries from §4.2:
// Extractor, OcrBackend, PostProcessor, Validator. Each wraps a generic,
// reader-writer-locked slice of named plugins — modeled on the teacher's
// normalisers.Registry, generalized with Go generics since we now have four
// structurally identical registries instead of one.
package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
	"github.com/kreuzberg-go/kreuzberg/internal/port"
)

// named is satisfied by every plugin kind via port.Plugin.
type named interface {
	port.Plugin
}

// base is the shared reader-writer-locked store. Registrations are rare
// (startup/teardown); lookups are hot and run entirely under RLock, matching
// §4.2's "reads are hot, writes are rare" design. Never hold this lock across a
// plugin invocation or a suspension point — callers copy out a snapshot slice
// before invoking anything.
type base[T named] struct {
	mu       sync.RWMutex
	byName   map[string]T
	order    []string // registration order, for "first match" dispatch
	poisoned bool
}

func newBase[T named]() *base[T] {
	return &base[T]{byName: make(map[string]T)}
}

func (b *base[T]) register(ctx context.Context, p T) error {
	name := p.Name()
	if name == "" {
		return domain.NewError(domain.KindValidation, "plugin name must not be empty")
	}

	b.mu.Lock()
	if b.poisoned {
		b.mu.Unlock()
		return domain.NewError(domain.KindLockPoisoned, "registry lock poisoned")
	}
	if _, exists := b.byName[name]; exists {
		b.mu.Unlock()
		return domain.NewError(domain.KindValidation, "plugin %q already registered", name)
	}
	b.byName[name] = p
	b.order = append(b.order, name)
	b.mu.Unlock()

	if err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				b.mu.Lock()
				b.poisoned = true
				b.mu.Unlock()
				err = domain.NewError(domain.KindLockPoisoned, "plugin %q panicked during Initialize: %v", name, r)
			}
		}()
		return p.Initialize(ctx)
	}(); err != nil {
		b.mu.Lock()
		delete(b.byName, name)
		b.order = removeName(b.order, name)
		b.mu.Unlock()
		return domain.WrapError(domain.KindPlugin, err, "initialize plugin %q", name)
	}
	return nil
}

func (b *base[T]) remove(ctx context.Context, name string) error {
	b.mu.Lock()
	p, exists := b.byName[name]
	if !exists {
		b.mu.Unlock()
		return domain.NewError(domain.KindValidation, "plugin %q not registered", name)
	}
	delete(b.byName, name)
	b.order = removeName(b.order, name)
	b.mu.Unlock()

	if err := p.Shutdown(ctx); err != nil {
		return domain.WrapError(domain.KindPlugin, err, "shutdown plugin %q", name)
	}
	return nil
}

func (b *base[T]) list() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// snapshot returns the registered plugins in registration order, safe to
// range over without holding any lock.
func (b *base[T]) snapshot() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]T, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.byName[name])
	}
	return out
}

func (b *base[T]) shutdownAll(ctx context.Context) error {
	b.mu.Lock()
	names := make([]string, len(b.order))
	copy(names, b.order)
	plugins := make(map[string]T, len(b.byName))
	for k, v := range b.byName {
		plugins[k] = v
	}
	b.byName = make(map[string]T)
	b.order = nil
	b.mu.Unlock()

	var firstErr error
	for _, name := range names {
		if err := plugins[name].Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = domain.WrapError(domain.KindPlugin, err, "shutdown plugin %q", name)
		}
	}
	return firstErr
}

func removeName(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// sortByPriorityDesc sorts a slice in place by a descending priority key,
// preserving relative order among equal priorities (stable, matching §4.2's
// "ties resolved by priority" wording for registries that expose one).
func sortByPriorityDesc[T any](items []T, priority func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return priority(items[i]) > priority(items[j])
	})
}
