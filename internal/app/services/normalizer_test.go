package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/pkg/apperrors"
)

// memStorage is an in-memory BlobReader for pipeline tests.
type memStorage struct {
	files map[string][]byte
}

func (m memStorage) ReadBytes(storagePath string) ([]byte, error) {
	data, ok := m.files[storagePath]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m memStorage) ResolvePath(storagePath string) string {
	return filepath.Join("/mem", storagePath)
}

type stubConverter struct {
	out     []byte
	err     error
	gotPath string
}

func (c *stubConverter) ConvertToPDF(_ context.Context, inputPath string) ([]byte, error) {
	c.gotPath = inputPath
	return c.out, c.err
}

func makeOnePagePDF(t *testing.T, label string) []byte {
	t.Helper()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()
	pdf.Text(20, 20, label)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("output does not parse as PDF: %v", err)
	}
	return pdfCtx.PageCount
}

func TestNormalizePDFPassthrough(t *testing.T) {
	original := makeOnePagePDF(t, "passthrough")
	storage := memStorage{files: map[string][]byte{"a.pdf": original}}
	n := NewNormalizer(storage, &stubConverter{}, DefaultTextLayout(), zerolog.Nop())

	got, err := n.Normalize(context.Background(), models.QuestionFile{
		OriginalName: "a.pdf",
		StoragePath:  "a.pdf",
		Format:       "pdf",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Error("PDF passthrough must return the stored bytes unchanged")
	}
}

func TestNormalizeDOCXUsesConverter(t *testing.T) {
	converted := makeOnePagePDF(t, "from docx")
	conv := &stubConverter{out: converted}
	storage := memStorage{files: map[string][]byte{"b.docx": []byte("not a real docx")}}
	n := NewNormalizer(storage, conv, DefaultTextLayout(), zerolog.Nop())

	got, err := n.Normalize(context.Background(), models.QuestionFile{
		OriginalName: "b.docx",
		StoragePath:  "b.docx",
		Format:       "docx",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !bytes.Equal(got, converted) {
		t.Error("expected converter output to be returned")
	}
	if conv.gotPath != filepath.Join("/mem", "b.docx") {
		t.Errorf("converter called with %q, want resolved path", conv.gotPath)
	}
}

func TestNormalizeDOCXConversionFailure(t *testing.T) {
	conv := &stubConverter{err: errors.New("soffice exploded")}
	storage := memStorage{files: map[string][]byte{"b.docx": []byte("x")}}
	n := NewNormalizer(storage, conv, DefaultTextLayout(), zerolog.Nop())

	_, err := n.Normalize(context.Background(), models.QuestionFile{
		OriginalName: "b.docx",
		StoragePath:  "b.docx",
		Format:       "docx",
	})
	if !errors.Is(err, apperrors.ErrConversionFailed) {
		t.Fatalf("got %v, want ErrConversionFailed", err)
	}
}

func TestNormalizeTXTSinglePage(t *testing.T) {
	// 250 characters on one logical line chunk into three rendered lines,
	// which fit comfortably on one A4 page.
	text := strings.Repeat("a", 250)
	storage := memStorage{files: map[string][]byte{"c.txt": []byte(text)}}
	n := NewNormalizer(storage, &stubConverter{}, DefaultTextLayout(), zerolog.Nop())

	got, err := n.Normalize(context.Background(), models.QuestionFile{
		OriginalName: "c.txt",
		StoragePath:  "c.txt",
		Format:       "txt",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if pc := pageCount(t, got); pc != 1 {
		t.Errorf("got %d pages, want 1", pc)
	}
}

func TestNormalizeTXTMultiPage(t *testing.T) {
	text := strings.TrimSuffix(strings.Repeat("line\n", 200), "\n")
	storage := memStorage{files: map[string][]byte{"long.txt": []byte(text)}}
	n := NewNormalizer(storage, &stubConverter{}, DefaultTextLayout(), zerolog.Nop())

	got, err := n.Normalize(context.Background(), models.QuestionFile{
		OriginalName: "long.txt",
		StoragePath:  "long.txt",
		Format:       "txt",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if pc := pageCount(t, got); pc < 2 {
		t.Errorf("got %d pages, want at least 2 for 200 lines", pc)
	}
}

func TestNormalizeUnsupportedFormat(t *testing.T) {
	n := NewNormalizer(memStorage{}, &stubConverter{}, DefaultTextLayout(), zerolog.Nop())

	_, err := n.Normalize(context.Background(), models.QuestionFile{
		OriginalName: "img.jpg",
		StoragePath:  "img.jpg",
		Format:       "jpg",
	})
	if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestNormalizeMissingSource(t *testing.T) {
	n := NewNormalizer(memStorage{}, &stubConverter{}, DefaultTextLayout(), zerolog.Nop())

	_, err := n.Normalize(context.Background(), models.QuestionFile{
		OriginalName: "gone.pdf",
		StoragePath:  "gone.pdf",
		Format:       "pdf",
	})
	if !errors.Is(err, apperrors.ErrSourceUnreadable) {
		t.Fatalf("got %v, want ErrSourceUnreadable", err)
	}
}

func TestNormalizeAllSkipsFailures(t *testing.T) {
	good := makeOnePagePDF(t, "good")
	storage := memStorage{files: map[string][]byte{"good.pdf": good}}
	n := NewNormalizer(storage, &stubConverter{}, DefaultTextLayout(), zerolog.Nop())

	files := []models.QuestionFile{
		{ID: 1, OriginalName: "good.pdf", StoragePath: "good.pdf", Format: "pdf"},
		{ID: 2, OriginalName: "gone.pdf", StoragePath: "gone.pdf", Format: "pdf"},
		{ID: 3, OriginalName: "weird.odt", StoragePath: "weird.odt", Format: "odt"},
	}

	docs, skipped := n.NormalizeAll(context.Background(), files)
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Source.ID != 1 {
		t.Errorf("wrong surviving document: %d", docs[0].Source.ID)
	}
	if len(skipped) != 2 {
		t.Fatalf("got %d skipped, want 2", len(skipped))
	}
	if !errors.Is(skipped[0].Reason, apperrors.ErrSourceUnreadable) {
		t.Errorf("skip reason %v, want ErrSourceUnreadable", skipped[0].Reason)
	}
	if !errors.Is(skipped[1].Reason, apperrors.ErrUnsupportedFormat) {
		t.Errorf("skip reason %v, want ErrUnsupportedFormat", skipped[1].Reason)
	}
}

func TestChunkText(t *testing.T) {
	got := chunkText(strings.Repeat("x", 250), 100)
	if len(got) != 3 {
		t.Fatalf("got %d chunks, want 3", len(got))
	}
	if len(got[0]) != 100 || len(got[1]) != 100 || len(got[2]) != 50 {
		t.Errorf("chunk lengths %d/%d/%d, want 100/100/50", len(got[0]), len(got[1]), len(got[2]))
	}

	got = chunkText("one\r\ntwo\n\nthree", 100)
	want := []string{"one", "two", "", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d: got %q, want %q", i, got[i], want[i])
		}
	}

	// Rune-aware splitting, not byte-aware.
	got = chunkText(strings.Repeat("é", 150), 100)
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}
	if n := len([]rune(got[0])); n != 100 {
		t.Errorf("first chunk has %d runes, want 100", n)
	}
}
