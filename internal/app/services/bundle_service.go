package services

import (
	"archive/zip"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/pkg/apperrors"
	"github.com/pradipta/banksoal/internal/pkg/filestorage"
	"github.com/pradipta/banksoal/internal/pkg/helpers"
)

// Bundle folder taxonomy. Answer keys and test cases keep their native file
// type; only the questions category is normalized and merged.
const (
	folderQuestions = "01_Soal/"
	folderAnswers   = "02_Kunci_Jawaban/"
	folderTestCases = "03_Test_Case/"

	suffixAnswerKey = "_KunciJawaban"
	suffixTestCase  = "_TestCase"
	suffixMergedPDF = "_SOAL_GABUNGAN.pdf"

	warningsEntry = "_WARNINGS.txt"
)

// BundleService packages the materials of one or more question sets into a
// single ZIP archive with a fixed internal layout.
type BundleService interface {
	// WriteBundle streams the archive for the given question sets into w.
	// Batch-level failures (no files at all, catalog errors) are returned
	// before the first byte is written; per-entry failures after that are
	// logged and skipped, best effort.
	WriteBundle(ctx context.Context, questionSetIDs []int64, bundleTitle string, w io.Writer) error
}

// bundleServiceImpl implements BundleService
type bundleServiceImpl struct {
	fileCatalog  FileCatalog
	titleCatalog TitleCatalog
	storage      filestorage.BlobReader
	normalizer   Normalizer
	merger       Merger
	logger       zerolog.Logger
}

// NewBundleService creates a new BundleService
func NewBundleService(
	fileCatalog FileCatalog,
	titleCatalog TitleCatalog,
	storage filestorage.BlobReader,
	normalizer Normalizer,
	merger Merger,
	logger zerolog.Logger,
) BundleService {
	return &bundleServiceImpl{
		fileCatalog:  fileCatalog,
		titleCatalog: titleCatalog,
		storage:      storage,
		normalizer:   normalizer,
		merger:       merger,
		logger:       logger,
	}
}

func (s *bundleServiceImpl) WriteBundle(ctx context.Context, questionSetIDs []int64, bundleTitle string, w io.Writer) error {
	files, err := s.fileCatalog.FindByQuestionSetIDs(ctx, questionSetIDs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return apperrors.ErrEmptyBatch
	}

	titles, err := s.titleCatalog.FindTitles(ctx, questionSetIDs)
	if err != nil {
		return err
	}

	var questions, answers, testCases []models.QuestionFile
	for _, file := range files {
		switch {
		case file.IsQuestions():
			questions = append(questions, file)
		case file.IsAnswers():
			answers = append(answers, file)
		case file.IsTestCases():
			testCases = append(testCases, file)
		default:
			s.logger.Warn().
				Str("file", file.OriginalName).
				Str("category", file.Category).
				Msg("Ignoring file with unknown category")
		}
	}

	// All fallible merge work happens before the archive is opened, so a
	// merge failure still yields a clean error response.
	var merged []byte
	var skipped []models.SkippedFile
	if len(questions) > 0 {
		docs, normSkipped := s.normalizer.NormalizeAll(ctx, questions)
		skipped = append(skipped, normSkipped...)

		var mergeSkipped []models.SkippedFile
		merged, mergeSkipped, err = s.merger.Merge(ctx, docs)
		if err != nil {
			return err
		}
		skipped = append(skipped, mergeSkipped...)
	}

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	if merged != nil {
		name := folderQuestions + helpers.SanitizeTitle(bundleTitle) + suffixMergedPDF
		if err := writeZipEntry(zw, name, merged); err != nil {
			return apperrors.NewCustomError(apperrors.ErrStreamWriteFailed, err.Error())
		}
	}

	answerSkipped := s.writeCategoryEntries(ctx, zw, answers, titles, folderAnswers, suffixAnswerKey)
	skipped = append(skipped, answerSkipped...)

	testCaseSkipped := s.writeCategoryEntries(ctx, zw, testCases, titles, folderTestCases, suffixTestCase)
	skipped = append(skipped, testCaseSkipped...)

	if err := ctx.Err(); err != nil {
		_ = zw.Close()
		return err
	}

	if len(skipped) > 0 {
		if err := writeZipEntry(zw, warningsEntry, renderWarnings(skipped)); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to write warnings manifest")
		}
	}

	// Closing flushes the central directory; it must be the last write.
	if err := zw.Close(); err != nil {
		return apperrors.NewCustomError(apperrors.ErrStreamWriteFailed, err.Error())
	}

	return nil
}

// writeCategoryEntries streams the original bytes of each file into the
// archive under the given folder, renamed after its owning question set.
// Files that cannot be read are skipped; the bundle is assembled best effort.
func (s *bundleServiceImpl) writeCategoryEntries(
	ctx context.Context,
	zw *zip.Writer,
	files []models.QuestionFile,
	titles map[int64]models.QuestionSetSummary,
	folder string,
	suffix string,
) []models.SkippedFile {
	var skipped []models.SkippedFile

	for _, file := range files {
		if ctx.Err() != nil {
			return skipped
		}

		data, err := s.storage.ReadBytes(file.StoragePath)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("file", file.OriginalName).
				Int64("questionSetId", file.QuestionSetID).
				Msg("Skipping unreadable file in bundle")
			skipped = append(skipped, models.SkippedFile{
				File:   file,
				Reason: apperrors.NewCustomError(apperrors.ErrSourceUnreadable, err.Error()),
			})
			continue
		}

		name := folder + entryBaseName(file, titles) + suffix + answerOrdinal(file) + file.Extension()
		if err := writeZipEntry(zw, name, data); err != nil {
			s.logger.Error().
				Err(err).
				Str("entry", name).
				Msg("Failed to write archive entry, stopping bundle")
			return skipped
		}
	}

	return skipped
}

// entryBaseName derives the sanitized owning-set title for an archive entry,
// falling back to the numeric ID when the set is gone from the catalog.
func entryBaseName(file models.QuestionFile, titles map[int64]models.QuestionSetSummary) string {
	if summary, ok := titles[file.QuestionSetID]; ok {
		if title := summary.SanitizedTitle(); title != "" {
			return title
		}
	}
	return fmt.Sprintf("QuestionSet_%d", file.QuestionSetID)
}

// answerOrdinal carries the ordinal suffix of multi-answer categories
// ("answers2" yields "2") into the renamed entry so entries stay unique.
func answerOrdinal(file models.QuestionFile) string {
	if !file.IsAnswers() {
		return ""
	}
	return strings.TrimPrefix(file.Category, models.CategoryAnswers)
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", name, err)
	}
	return nil
}

// renderWarnings builds the manifest listing every skipped file, so a silent
// partial bundle is at least diagnosable from its own content.
func renderWarnings(skipped []models.SkippedFile) []byte {
	var b strings.Builder
	b.WriteString("The following files could not be included:\n\n")
	for _, s := range skipped {
		fmt.Fprintf(&b, "- %s (question set %d): %v\n", s.File.OriginalName, s.File.QuestionSetID, s.Reason)
	}
	return []byte(b.String())
}
