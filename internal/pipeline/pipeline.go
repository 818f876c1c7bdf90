// Package pipeline runs a completed extraction through the post-extraction
// stages of §4.3: early post-processors, language detection, middle
// post-processors, validators, token reduction, late post-processors, and
// finally chunking. It generalizes the teacher's postprocessors.Pipeline
// (a single Order-sorted chain) into three named stages plus the
// spec-specific steps interleaved between them.
package pipeline

import (
	"context"

	"github.com/kreuzberg-go/kreuzberg/internal/chunking"
	"github.com/kreuzberg-go/kreuzberg/internal/domain"
	"github.com/kreuzberg-go/kreuzberg/internal/port"
	"github.com/kreuzberg-go/kreuzberg/internal/registry"
)

// Stages bundles the registries the pipeline dispatches against. A single
// Stages value is shared by every extraction; Run is safe for concurrent use since
// every registry lookup is read-only.
type Stages struct {
	PostProcessors *registry.PostProcessorRegistry
	Validators     *registry.ValidatorRegistry
}

// Run executes every stage in order against result, mutating it in place.
// A validator failure or a fatal post-processor error aborts the remaining
// stages and is returned to the caller as a KindValidation/KindPlugin error.
func Run(ctx context.Context, result *domain.ExtractionResult, cfg domain.ExtractionConfig, stages Stages) error {
	if err := runProcessors(ctx, stages.PostProcessors, port.StageEarly, result, cfg); err != nil {
		return err
	}

	if cfg.LanguageDetection != nil && cfg.LanguageDetection.Enabled {
		detectLanguages(result, *cfg.LanguageDetection)
	}

	if err := runProcessors(ctx, stages.PostProcessors, port.StageMiddle, result, cfg); err != nil {
		return err
	}

	if err := runValidators(stages.Validators, result, cfg); err != nil {
		return err
	}

	if cfg.TokenReduction != nil {
		reduceTokens(result, *cfg.TokenReduction)
	}

	if err := runProcessors(ctx, stages.PostProcessors, port.StageLate, result, cfg); err != nil {
		return err
	}

	return runChunking(result, cfg)
}

func runProcessors(ctx context.Context, reg *registry.PostProcessorRegistry, stage port.ProcessingStage, result *domain.ExtractionResult, cfg domain.ExtractionConfig) error {
	if reg == nil {
		return nil
	}
	for _, p := range reg.ForStage(stage) {
		if err := p.Process(ctx, result, cfg); err != nil {
			if p.Fatal() {
				return domain.WrapError(domain.KindPlugin, err, "post-processor %q (stage %s) failed", p.Name(), stage)
			}
			// non-fatal: record and continue, matching §4.3's "a non-fatal
			// processor error degrades the result, it never aborts the pipeline".
			result.Warnings = append(result.Warnings, p.Name()+": "+err.Error())
			if result.Metadata.Error == nil {
				result.Metadata.Error = &domain.ErrorMetadata{Stage: string(stage), Message: p.Name() + ": " + err.Error()}
			}
		}
	}
	return nil
}

func runValidators(reg *registry.ValidatorRegistry, result *domain.ExtractionResult, cfg domain.ExtractionConfig) error {
	if reg == nil {
		return nil
	}
	for _, v := range reg.Ordered() {
		if !v.ShouldValidate(result, cfg) {
			continue
		}
		if err := v.Validate(result, cfg); err != nil {
			return domain.WrapError(domain.KindValidation, err, "validator %q rejected result", v.Name())
		}
	}
	return nil
}

func runChunking(result *domain.ExtractionResult, cfg domain.ExtractionConfig) error {
	if cfg.Chunking == nil || cfg.Chunking.Type == "" {
		return nil
	}
	chunks, err := chunking.Chunk(result.Content, result.PageBoundaries, *cfg.Chunking)
	if err != nil {
		return domain.WrapError(domain.KindValidation, err, "chunking failed")
	}
	result.Chunks = chunks
	return nil
}
