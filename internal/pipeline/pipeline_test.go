package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
	"github.com/kreuzberg-go/kreuzberg/internal/port"
	"github.com/kreuzberg-go/kreuzberg/internal/registry"
)

type stubProcessor struct {
	name     string
	stage    port.ProcessingStage
	priority int
	fatal    bool
	err      error
	applied  func(result *domain.ExtractionResult)
}

func (s *stubProcessor) Name() string                         { return s.name }
func (s *stubProcessor) Version() string                      { return "1.0.0" }
func (s *stubProcessor) Initialize(ctx context.Context) error { return nil }
func (s *stubProcessor) Shutdown(ctx context.Context) error   { return nil }
func (s *stubProcessor) Stage() port.ProcessingStage          { return s.stage }
func (s *stubProcessor) Priority() int                        { return s.priority }
func (s *stubProcessor) Fatal() bool                          { return s.fatal }
func (s *stubProcessor) Process(ctx context.Context, result *domain.ExtractionResult, cfg domain.ExtractionConfig) error {
	if s.applied != nil {
		s.applied(result)
	}
	return s.err
}

type stubValidator struct {
	name    string
	applies bool
	err     error
}

func (s *stubValidator) Name() string                         { return s.name }
func (s *stubValidator) Version() string                      { return "1.0.0" }
func (s *stubValidator) Initialize(ctx context.Context) error { return nil }
func (s *stubValidator) Shutdown(ctx context.Context) error   { return nil }
func (s *stubValidator) Priority() int                        { return 0 }
func (s *stubValidator) ShouldValidate(result *domain.ExtractionResult, cfg domain.ExtractionConfig) bool {
	return s.applies
}
func (s *stubValidator) Validate(result *domain.ExtractionResult, cfg domain.ExtractionConfig) error {
	return s.err
}

func newStages(t *testing.T, processors []port.PostProcessor, validators []port.Validator) Stages {
	t.Helper()
	pr := registry.NewPostProcessorRegistry()
	for _, p := range processors {
		require.NoError(t, pr.Register(context.Background(), p))
	}
	vr := registry.NewValidatorRegistry()
	for _, v := range validators {
		require.NoError(t, vr.Register(context.Background(), v))
	}
	return Stages{PostProcessors: pr, Validators: vr}
}

func TestRunAppendsNonFatalProcessorErrorAsWarning(t *testing.T) {
	stages := newStages(t, []port.PostProcessor{
		&stubProcessor{name: "soft-fail", stage: port.StageEarly, err: assertErr},
	}, nil)

	result := &domain.ExtractionResult{Content: "hello"}
	err := Run(context.Background(), result, domain.ExtractionConfig{}, stages)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "soft-fail")
	require.NotNil(t, result.Metadata.Error)
	assert.Equal(t, string(port.StageEarly), result.Metadata.Error.Stage)
	assert.Contains(t, result.Metadata.Error.Message, "soft-fail")
}

var assertErr = domain.NewError(domain.KindPlugin, "deliberate failure")

func TestRunAbortsOnFatalProcessorError(t *testing.T) {
	stages := newStages(t, []port.PostProcessor{
		&stubProcessor{name: "hard-fail", stage: port.StageEarly, fatal: true, err: assertErr},
	}, nil)

	result := &domain.ExtractionResult{Content: "hello"}
	err := Run(context.Background(), result, domain.ExtractionConfig{}, stages)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPlugin))
}

func TestRunStagesExecuteInOrder(t *testing.T) {
	var order []string
	stages := newStages(t, []port.PostProcessor{
		&stubProcessor{name: "late", stage: port.StageLate, applied: func(*domain.ExtractionResult) { order = append(order, "late") }},
		&stubProcessor{name: "early", stage: port.StageEarly, applied: func(*domain.ExtractionResult) { order = append(order, "early") }},
		&stubProcessor{name: "middle", stage: port.StageMiddle, applied: func(*domain.ExtractionResult) { order = append(order, "middle") }},
	}, nil)

	result := &domain.ExtractionResult{Content: "hello"}
	require.NoError(t, Run(context.Background(), result, domain.ExtractionConfig{}, stages))
	assert.Equal(t, []string{"early", "middle", "late"}, order)
}

func TestRunValidatorFailureShortCircuits(t *testing.T) {
	var ranLate bool
	stages := newStages(t, []port.PostProcessor{
		&stubProcessor{name: "late", stage: port.StageLate, applied: func(*domain.ExtractionResult) { ranLate = true }},
	}, []port.Validator{
		&stubValidator{name: "rejector", applies: true, err: domain.ValidationError("content", "too short")},
	})

	result := &domain.ExtractionResult{Content: "x"}
	err := Run(context.Background(), result, domain.ExtractionConfig{}, stages)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.False(t, ranLate, "stages after a validator rejection must not run")
}

func TestRunSkippedValidatorDoesNotAbort(t *testing.T) {
	stages := newStages(t, nil, []port.Validator{
		&stubValidator{name: "inapplicable", applies: false, err: domain.ValidationError("content", "would fail if it ran")},
	})

	result := &domain.ExtractionResult{Content: "x"}
	require.NoError(t, Run(context.Background(), result, domain.ExtractionConfig{}, stages))
}

func TestRunDetectsLanguageWhenEnabled(t *testing.T) {
	stages := newStages(t, nil, nil)
	result := &domain.ExtractionResult{Content: "the quick brown fox and the lazy dog are in the garden with the cat"}
	cfg := domain.ExtractionConfig{
		LanguageDetection: &domain.LanguageDetectionConfig{Enabled: true, MinConfidence: 0.05},
	}
	require.NoError(t, Run(context.Background(), result, cfg, stages))
	assert.Contains(t, result.DetectedLanguages, "en")
}

func TestRunAppliesTokenReduction(t *testing.T) {
	stages := newStages(t, nil, nil)
	result := &domain.ExtractionResult{Content: "hello    world  \n\n\n"}
	cfg := domain.ExtractionConfig{
		TokenReduction: &domain.TokenReductionConfig{Mode: domain.TokenReductionLight},
	}
	require.NoError(t, Run(context.Background(), result, cfg, stages))
	assert.Equal(t, "hello world", result.Content)
}

func TestRunChunksWhenConfigured(t *testing.T) {
	stages := newStages(t, nil, nil)
	result := &domain.ExtractionResult{Content: "one two three four five six seven eight nine ten"}
	cfg := domain.ExtractionConfig{
		Chunking: &domain.ChunkingConfig{MaxCharacters: 20, Overlap: 5, Type: domain.ChunkerText},
	}
	require.NoError(t, Run(context.Background(), result, cfg, stages))
	assert.NotEmpty(t, result.Chunks)
}

func TestRunSkipsChunkingWhenNotConfigured(t *testing.T) {
	stages := newStages(t, nil, nil)
	result := &domain.ExtractionResult{Content: "hello"}
	require.NoError(t, Run(context.Background(), result, domain.ExtractionConfig{}, stages))
	assert.Empty(t, result.Chunks)
}

func TestRunToleratesNilRegistries(t *testing.T) {
	result := &domain.ExtractionResult{Content: "hello"}
	err := Run(context.Background(), result, domain.ExtractionConfig{}, Stages{})
	require.NoError(t, err)
}
