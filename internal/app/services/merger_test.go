package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/pkg/apperrors"
)

func TestMergeConcatenatesPages(t *testing.T) {
	m := NewMerger(zerolog.Nop())

	docs := []models.NormalizedDocument{
		{Source: models.QuestionFile{ID: 1, OriginalName: "a.pdf"}, PDFBytes: makeOnePagePDF(t, "first")},
		{Source: models.QuestionFile{ID: 2, OriginalName: "b.pdf"}, PDFBytes: makeOnePagePDF(t, "second")},
		{Source: models.QuestionFile{ID: 3, OriginalName: "c.pdf"}, PDFBytes: makeOnePagePDF(t, "third")},
	}

	merged, skipped, err := m.Merge(context.Background(), docs)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("got %d skipped, want 0", len(skipped))
	}
	if pc := pageCount(t, merged); pc != 3 {
		t.Errorf("got %d pages, want 3", pc)
	}
}

func TestMergeSingleDocument(t *testing.T) {
	m := NewMerger(zerolog.Nop())

	merged, skipped, err := m.Merge(context.Background(), []models.NormalizedDocument{
		{Source: models.QuestionFile{ID: 1, OriginalName: "only.pdf"}, PDFBytes: makeOnePagePDF(t, "only")},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("got %d skipped, want 0", len(skipped))
	}
	if pc := pageCount(t, merged); pc != 1 {
		t.Errorf("got %d pages, want 1", pc)
	}
}

func TestMergeSkipsUnparseableDocument(t *testing.T) {
	m := NewMerger(zerolog.Nop())

	docs := []models.NormalizedDocument{
		{Source: models.QuestionFile{ID: 1, OriginalName: "a.pdf"}, PDFBytes: makeOnePagePDF(t, "first")},
		{Source: models.QuestionFile{ID: 2, OriginalName: "broken.pdf"}, PDFBytes: []byte("this is not a pdf")},
		{Source: models.QuestionFile{ID: 3, OriginalName: "c.pdf"}, PDFBytes: makeOnePagePDF(t, "third")},
	}

	merged, skipped, err := m.Merge(context.Background(), docs)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(skipped) != 1 {
		t.Fatalf("got %d skipped, want 1", len(skipped))
	}
	if skipped[0].File.ID != 2 {
		t.Errorf("skipped file %d, want 2", skipped[0].File.ID)
	}
	if !errors.Is(skipped[0].Reason, apperrors.ErrConversionFailed) {
		t.Errorf("skip reason %v, want ErrConversionFailed", skipped[0].Reason)
	}
	if pc := pageCount(t, merged); pc != 2 {
		t.Errorf("got %d pages, want 2", pc)
	}
}

func TestMergeEmptyInput(t *testing.T) {
	m := NewMerger(zerolog.Nop())

	merged, skipped, err := m.Merge(context.Background(), nil)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("got %d skipped, want 0", len(skipped))
	}
	if !bytes.HasPrefix(merged, []byte("%PDF")) {
		t.Error("empty merge must still produce a PDF document")
	}
	if pc := pageCount(t, merged); pc != 0 {
		t.Errorf("got %d pages, want a zero-page document", pc)
	}
}

func TestMergeAllSkippedYieldsZeroPages(t *testing.T) {
	m := NewMerger(zerolog.Nop())

	// Every input fails to parse, so the merge degrades all the way down to
	// the empty document rather than serving a blank page.
	merged, skipped, err := m.Merge(context.Background(), []models.NormalizedDocument{
		{Source: models.QuestionFile{ID: 1, OriginalName: "bad.pdf"}, PDFBytes: []byte("not a pdf")},
		{Source: models.QuestionFile{ID: 2, OriginalName: "worse.pdf"}, PDFBytes: []byte{0x00, 0x01}},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(skipped) != 2 {
		t.Fatalf("got %d skipped, want 2", len(skipped))
	}
	if pc := pageCount(t, merged); pc != 0 {
		t.Errorf("got %d pages, want a zero-page document", pc)
	}
}

func TestMergeCancelledContext(t *testing.T) {
	m := NewMerger(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := m.Merge(ctx, []models.NormalizedDocument{
		{Source: models.QuestionFile{ID: 1}, PDFBytes: makeOnePagePDF(t, "x")},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
