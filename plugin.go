package kreuzberg

import "github.com/kreuzberg-go/kreuzberg/internal/port"

// The plugin capability contracts (§4.2) are defined in internal/port and
// re-exported here so a plugin author never needs to import an internal
// package to implement Extractor, OCRBackend, PostProcessor or Validator.
type (
	Plugin          = port.Plugin
	Source          = port.Source
	Extractor       = port.Extractor
	OCRBackend      = port.OCRBackend
	ProcessingStage = port.ProcessingStage
	PostProcessor   = port.PostProcessor
	Validator       = port.Validator
)

const (
	StageEarly  = port.StageEarly
	StageMiddle = port.StageMiddle
	StageLate   = port.StageLate
)
