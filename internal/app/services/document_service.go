package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/pkg/apperrors"
)

// FileCatalog is the catalog read path over stored file metadata.
// Implemented by repositories.QuestionFileRepository.
type FileCatalog interface {
	FindByQuestionSetIDs(ctx context.Context, ids []int64) ([]models.QuestionFile, error)
	FindByCombineMode(ctx context.Context, ids []int64, mode models.CombineMode) ([]models.QuestionFile, error)
}

// TitleCatalog resolves question set titles for bundle naming.
// Implemented by repositories.QuestionSetRepository.
type TitleCatalog interface {
	FindTitles(ctx context.Context, ids []int64) (map[int64]models.QuestionSetSummary, error)
}

// CombineResult is the outcome of a combine request: the merged PDF plus the
// per-file failures that were skipped along the way.
type CombineResult struct {
	PDF       []byte
	FileCount int
	Skipped   []models.SkippedFile
}

// DocumentService produces merged PDF previews and downloads across one or
// more question sets.
type DocumentService interface {
	Combine(ctx context.Context, questionSetIDs []int64, mode models.CombineMode) (*CombineResult, error)
}

// documentServiceImpl implements DocumentService
type documentServiceImpl struct {
	fileCatalog FileCatalog
	normalizer  Normalizer
	merger      Merger
	logger      zerolog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(fileCatalog FileCatalog, normalizer Normalizer, merger Merger, logger zerolog.Logger) DocumentService {
	return &documentServiceImpl{
		fileCatalog: fileCatalog,
		normalizer:  normalizer,
		merger:      merger,
		logger:      logger,
	}
}

// Combine resolves the files participating in the given mode, normalizes
// each into PDF form and merges the successes into one document. Per-file
// failures are skipped; resolving zero files is a batch-level error raised
// before any output is produced.
func (s *documentServiceImpl) Combine(ctx context.Context, questionSetIDs []int64, mode models.CombineMode) (*CombineResult, error) {
	files, err := s.fileCatalog.FindByCombineMode(ctx, questionSetIDs, mode)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.ErrNothingToCombine
	}

	docs, skipped := s.normalizer.NormalizeAll(ctx, files)

	merged, mergeSkipped, err := s.merger.Merge(ctx, docs)
	if err != nil {
		return nil, err
	}
	skipped = append(skipped, mergeSkipped...)

	if len(skipped) > 0 {
		s.logger.Info().
			Int("requested", len(files)).
			Int("skipped", len(skipped)).
			Msg("Combine completed with skipped files")
	}

	return &CombineResult{
		PDF:       merged,
		FileCount: len(files),
		Skipped:   skipped,
	}, nil
}
