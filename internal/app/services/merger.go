package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog"

	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/pkg/apperrors"
)

// Merger concatenates normalized PDF buffers into one document, preserving
// per-file page order. Buffers that do not parse as PDF are logged and
// skipped so one malformed upload never blocks the rest of a batch.
type Merger interface {
	Merge(ctx context.Context, docs []models.NormalizedDocument) ([]byte, []models.SkippedFile, error)
}

// mergerImpl implements Merger
type mergerImpl struct {
	logger zerolog.Logger
}

// NewMerger creates a new Merger
func NewMerger(logger zerolog.Logger) Merger {
	return &mergerImpl{logger: logger}
}

// Merge concatenates the pages of all parseable input documents, in input
// order. An empty input list yields an empty, zero-page document.
func (m *mergerImpl) Merge(ctx context.Context, docs []models.NormalizedDocument) ([]byte, []models.SkippedFile, error) {
	conf := model.NewDefaultConfiguration()

	readers := make([]io.ReadSeeker, 0, len(docs))
	var skipped []models.SkippedFile

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}

		// Each buffer is parsed once up front so an unparseable document
		// degrades into a per-file skip instead of failing the whole merge.
		if _, err := api.ReadValidateAndOptimize(bytes.NewReader(doc.PDFBytes), conf); err != nil {
			m.logger.Warn().
				Err(err).
				Str("file", doc.Source.OriginalName).
				Int64("questionSetId", doc.Source.QuestionSetID).
				Msg("Skipping document that does not parse as PDF")
			skipped = append(skipped, models.SkippedFile{
				File:   doc.Source,
				Reason: apperrors.NewConversionError(err, fmt.Sprintf("%s does not parse as PDF", doc.Source.OriginalName)),
			})
			continue
		}
		readers = append(readers, bytes.NewReader(doc.PDFBytes))
	}

	if len(readers) == 0 {
		empty, err := emptyPDF(conf)
		return empty, skipped, err
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, conf); err != nil {
		return nil, skipped, fmt.Errorf("pdf merge failed: %w", err)
	}

	return buf.Bytes(), skipped, nil
}

// emptyPDF builds a valid document whose page tree holds zero pages.
func emptyPDF(conf *model.Configuration) ([]byte, error) {
	pdfCtx, err := pdfcpu.CreateContextWithXRefTable(conf, types.PaperSize["A4"])
	if err != nil {
		return nil, fmt.Errorf("failed to build empty document: %w", err)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(pdfCtx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write empty document: %w", err)
	}
	return buf.Bytes(), nil
}
