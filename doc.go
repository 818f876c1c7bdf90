// Package kreuzberg converts heterogeneous documents — PDFs, Office files, images,
// HTML/XML, email, archives — into a single structured ExtractionResult: text,
// tables, images, metadata, and optional chunks and detected languages.
//
// Callers submit a filesystem path or an in-memory byte buffer, an optional MIME
// hint, and an ExtractionConfig, and receive either a well-typed ExtractionResult
// or an *Error naming the offending stage. The sync and async entry points
// (ExtractFileSync/ExtractFile, ExtractBytesSync/ExtractBytes, and their Batch
// variants) share one implementation in Context.extract; the sync variants simply
// run that implementation to completion on the caller's goroutine.
//
// Format dispatch, OCR backends, post-processors and validators are plugins
// registered against a Context (see RegisterExtractor, RegisterOCRBackend,
// RegisterPostProcessor, RegisterValidator). DefaultContext lazily builds a
// process-wide Context pre-loaded with the PPTX extractor and the standard
// pipeline stages; most callers never construct their own.
package kreuzberg
