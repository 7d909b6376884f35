package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/pkg/apperrors"
	"github.com/pradipta/banksoal/internal/pkg/docconv"
	"github.com/pradipta/banksoal/internal/pkg/filestorage"
)

// Normalizer converts a single source file into an in-memory PDF buffer.
// PDF sources pass through untouched, DOCX goes through the external
// conversion routine, and TXT is laid out as monospaced text.
type Normalizer interface {
	Normalize(ctx context.Context, file models.QuestionFile) ([]byte, error)
	NormalizeAll(ctx context.Context, files []models.QuestionFile) ([]models.NormalizedDocument, []models.SkippedFile)
}

// TextLayout holds the plain-text rendering constants. The fixed-width
// chunking has no word-wrap awareness; it reproduces the layout of the
// uploads this system has always produced.
type TextLayout struct {
	CharsPerLine int
	FontSize     float64
	MarginMM     float64
	LineHeightMM float64
}

// DefaultTextLayout returns the standard layout constants.
func DefaultTextLayout() TextLayout {
	return TextLayout{
		CharsPerLine: 100,
		FontSize:     10,
		MarginMM:     15,
		LineHeightMM: 5,
	}
}

// normalizerImpl implements Normalizer
type normalizerImpl struct {
	storage   filestorage.BlobReader
	converter docconv.Converter
	layout    TextLayout
	logger    zerolog.Logger
}

// NewNormalizer creates a new Normalizer
func NewNormalizer(storage filestorage.BlobReader, converter docconv.Converter, layout TextLayout, logger zerolog.Logger) Normalizer {
	if layout.CharsPerLine <= 0 {
		layout = DefaultTextLayout()
	}
	return &normalizerImpl{
		storage:   storage,
		converter: converter,
		layout:    layout,
		logger:    logger,
	}
}

// Normalize converts one source file into PDF bytes
func (n *normalizerImpl) Normalize(ctx context.Context, file models.QuestionFile) ([]byte, error) {
	format, ok := file.FileFormat()
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedFormat,
			fmt.Sprintf("unsupported format %q for file %s", file.Format, file.OriginalName))
	}

	switch format {
	case models.FormatPDF:
		// Passthrough, byte-identical. Well-formedness is checked by the
		// merge step, not here.
		data, err := n.storage.ReadBytes(file.StoragePath)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrSourceUnreadable,
				fmt.Sprintf("cannot read %s: %v", file.OriginalName, err))
		}
		return data, nil

	case models.FormatDOCX:
		data, err := n.converter.ConvertToPDF(ctx, n.storage.ResolvePath(file.StoragePath))
		if err != nil {
			return nil, apperrors.NewConversionError(err,
				fmt.Sprintf("conversion of %s failed: %v", file.OriginalName, err))
		}
		return data, nil

	case models.FormatTXT:
		raw, err := n.storage.ReadBytes(file.StoragePath)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrSourceUnreadable,
				fmt.Sprintf("cannot read %s: %v", file.OriginalName, err))
		}
		data, err := n.textToPDF(string(raw))
		if err != nil {
			return nil, apperrors.NewConversionError(err,
				fmt.Sprintf("text layout of %s failed: %v", file.OriginalName, err))
		}
		return data, nil
	}

	return nil, apperrors.ErrUnsupportedFormat
}

// NormalizeAll runs Normalize over a batch, partitioning results into
// successes and per-file failures. Failures are logged and excluded from the
// output; they never abort the batch.
func (n *normalizerImpl) NormalizeAll(ctx context.Context, files []models.QuestionFile) ([]models.NormalizedDocument, []models.SkippedFile) {
	docs := make([]models.NormalizedDocument, 0, len(files))
	var skipped []models.SkippedFile

	for _, file := range files {
		pdfBytes, err := n.Normalize(ctx, file)
		if err != nil {
			n.logger.Warn().
				Err(err).
				Str("file", file.OriginalName).
				Int64("questionSetId", file.QuestionSetID).
				Msg("Skipping file that failed normalization")
			skipped = append(skipped, models.SkippedFile{File: file, Reason: err})
			continue
		}
		docs = append(docs, models.NormalizedDocument{Source: file, PDFBytes: pdfBytes})
	}

	return docs, skipped
}

// textToPDF lays UTF-8 text out on A4 pages as monospaced lines, starting a
// new page whenever the vertical cursor reaches the bottom margin.
func (n *normalizerImpl) textToPDF(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Courier", "", n.layout.FontSize)
	pdf.AddPage()

	_, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - n.layout.MarginMM
	y := n.layout.MarginMM

	for _, line := range chunkText(text, n.layout.CharsPerLine) {
		if y > bottom {
			pdf.AddPage()
			y = n.layout.MarginMM
		}
		pdf.Text(n.layout.MarginMM, y, line)
		y += n.layout.LineHeightMM
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// chunkText splits text into fixed-width rune chunks, honoring existing line
// breaks. Single lines longer than width are cut mid-word.
func chunkText(text string, width int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		if len(runes) == 0 {
			chunks = append(chunks, "")
			continue
		}
		for start := 0; start < len(runes); start += width {
			end := start + width
			if end > len(runes) {
				end = len(runes)
			}
			chunks = append(chunks, string(runes[start:end]))
		}
	}
	return chunks
}
