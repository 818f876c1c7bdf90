package chunking

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

func TestChunkEmptyInput(t *testing.T) {
	chunks, err := Chunk("", nil, domain.ChunkingConfig{MaxCharacters: 100, Type: domain.ChunkerText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected zero chunks, got %d", len(chunks))
	}
}

func TestChunkRespectsMaxCharacters(t *testing.T) {
	text := strings.Repeat("word ", 500)
	chunks, err := Chunk(text, nil, domain.ChunkingConfig{MaxCharacters: 50, Overlap: 10, Type: domain.ChunkerText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range chunks {
		if len(c.Content) > 50 {
			t.Fatalf("chunk %d exceeds max_characters: %d bytes", i, len(c.Content))
		}
	}
}

func TestChunkOverlapInvariant(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta epsilon zeta. ", 30)
	cfg := domain.ChunkingConfig{MaxCharacters: 60, Overlap: 15, Type: domain.ChunkerText}
	chunks, err := Chunk(text, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i+1 < len(chunks); i++ {
		cur, next := chunks[i], chunks[i+1]
		if next.Metadata.ByteStart > cur.Metadata.ByteEnd {
			t.Fatalf("chunk %d leaves a gap before chunk %d", i, i+1)
		}
		if got := cur.Metadata.ByteEnd - next.Metadata.ByteStart; got != cfg.Overlap {
			t.Fatalf("chunks %d and %d overlap by %d bytes, want %d", i, i+1, got, cfg.Overlap)
		}
	}
}

func TestChunkNeverSplitsRune(t *testing.T) {
	text := strings.Repeat("héllo wörld 日本語のテキスト. ", 50)
	cfg := domain.ChunkingConfig{MaxCharacters: 40, Overlap: 8, Type: domain.ChunkerText}
	chunks, err := Chunk(text, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range chunks {
		if !utf8.ValidString(c.Content) {
			t.Fatalf("chunk %d is not valid UTF-8: %q", i, c.Content)
		}
	}
}

func TestChunkPageBoundaryMapping(t *testing.T) {
	text := "first page content. second page content here."
	boundaries := []domain.PageBoundary{
		{ByteStart: 0, ByteEnd: 20, PageNumber: 1},
		{ByteStart: 20, ByteEnd: len(text), PageNumber: 2},
	}
	cfg := domain.ChunkingConfig{MaxCharacters: 1000, Type: domain.ChunkerText}
	chunks, err := Chunk(text, boundaries, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected a single chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.Metadata.FirstPage == nil || *c.Metadata.FirstPage != 1 {
		t.Fatalf("expected first_page 1, got %v", c.Metadata.FirstPage)
	}
	if c.Metadata.LastPage == nil || *c.Metadata.LastPage != 2 {
		t.Fatalf("expected last_page 2, got %v", c.Metadata.LastPage)
	}
}

func TestChunkRejectsOverlapExceedingMax(t *testing.T) {
	_, err := Chunk("some text", nil, domain.ChunkingConfig{MaxCharacters: 10, Overlap: 20, Type: domain.ChunkerText})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected KindValidation, got %v", err)
	}
}

func TestChunkRejectsMisalignedBoundary(t *testing.T) {
	text := "日本語"
	_, err := Chunk(text, []domain.PageBoundary{{ByteStart: 1, ByteEnd: len(text), PageNumber: 1}}, domain.ChunkingConfig{MaxCharacters: 100, Type: domain.ChunkerText})
	if err == nil {
		t.Fatal("expected validation error for misaligned boundary")
	}
}

func TestChunkRejectsZeroWidthBoundary(t *testing.T) {
	text := "first page content. second page content here."
	_, err := Chunk(text, []domain.PageBoundary{{ByteStart: 5, ByteEnd: 5, PageNumber: 1}}, domain.ChunkingConfig{MaxCharacters: 100, Type: domain.ChunkerText})
	if err == nil {
		t.Fatal("expected validation error for zero-width boundary")
	}
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected KindValidation, got %v", err)
	}
}
