package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/pkg/apperrors"
)

// QuestionFileRepository handles database operations for question files.
// It is the catalog read path of the document pipeline: results are always
// ordered by owning question set first, then category, so merged output and
// archive entries come out deterministic.
type QuestionFileRepository struct {
	db *pgxpool.Pool
}

// NewQuestionFileRepository creates a new QuestionFileRepository
func NewQuestionFileRepository(db *pgxpool.Pool) *QuestionFileRepository {
	return &QuestionFileRepository{db: db}
}

const questionFileColumns = `id, question_set_id, original_name, storage_path, format, category, file_size, created_at`

const questionFileColumnsQualified = `qf.id, qf.question_set_id, qf.original_name, qf.storage_path, qf.format, qf.category, qf.file_size, qf.created_at`

// Catalog resolution queries. Files of soft deleted question sets must never
// flow into combines or bundles, hence the join on deleted_at.
const (
	findByQuestionSetIDsQuery = `
		SELECT ` + questionFileColumnsQualified + `
		FROM question_files qf
		JOIN question_sets qs ON qs.id = qf.question_set_id AND qs.deleted_at IS NULL
		WHERE qf.question_set_id = ANY($1)
		ORDER BY qf.question_set_id ASC, qf.category ASC, qf.id ASC
	`

	findByCombineModeQueryFmt = `
		SELECT ` + questionFileColumnsQualified + `
		FROM question_files qf
		JOIN question_sets qs ON qs.id = qf.question_set_id AND qs.deleted_at IS NULL
		WHERE qf.question_set_id = ANY($1) AND %s
		ORDER BY qf.question_set_id ASC, qf.category ASC, qf.id ASC
	`

	combineCondAnswersOnly           = `qf.category LIKE 'answers%'`
	combineCondQuestionsAndTestCases = `qf.category IN ('questions', 'testCases')`
)

func scanQuestionFiles(rows pgx.Rows) ([]models.QuestionFile, error) {
	var files []models.QuestionFile
	for rows.Next() {
		var f models.QuestionFile
		if err := rows.Scan(
			&f.ID,
			&f.QuestionSetID,
			&f.OriginalName,
			&f.StoragePath,
			&f.Format,
			&f.Category,
			&f.FileSize,
			&f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning question file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetByID retrieves a question file by ID
func (r *QuestionFileRepository) GetByID(ctx context.Context, id int64) (*models.QuestionFile, error) {
	query := `
		SELECT ` + questionFileColumns + `
		FROM question_files
		WHERE id = $1
	`

	var f models.QuestionFile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.QuestionSetID,
		&f.OriginalName,
		&f.StoragePath,
		&f.Format,
		&f.Category,
		&f.FileSize,
		&f.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrQuestionFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting question file: %w", err)
	}

	return &f, nil
}

// Create inserts a new question file record
func (r *QuestionFileRepository) Create(ctx context.Context, file *models.QuestionFile) (int64, error) {
	query := `
		INSERT INTO question_files (question_set_id, original_name, storage_path, format, category, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		file.QuestionSetID,
		file.OriginalName,
		file.StoragePath,
		file.Format,
		file.Category,
		file.FileSize,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating question file: %w", err)
	}

	return id, nil
}

// Delete removes a question file record
func (r *QuestionFileRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM question_files WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting question file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrQuestionFileNotFound
	}

	return nil
}

// FindByQuestionSet lists all files belonging to one question set
func (r *QuestionFileRepository) FindByQuestionSet(ctx context.Context, questionSetID int64) ([]models.QuestionFile, error) {
	query := `
		SELECT ` + questionFileColumns + `
		FROM question_files
		WHERE question_set_id = $1
		ORDER BY category ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, questionSetID)
	if err != nil {
		return nil, fmt.Errorf("error listing question files: %w", err)
	}
	defer rows.Close()

	return scanQuestionFiles(rows)
}

// FindByQuestionSetIDs resolves all files for the given question sets,
// regardless of category. Used by the bundle assembler.
func (r *QuestionFileRepository) FindByQuestionSetIDs(ctx context.Context, ids []int64) ([]models.QuestionFile, error) {
	rows, err := r.db.Query(ctx, findByQuestionSetIDsQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving question files: %w", err)
	}
	defer rows.Close()

	return scanQuestionFiles(rows)
}

// FindByCombineMode resolves files for the given question sets restricted to
// the categories that take part in the given combine mode.
func (r *QuestionFileRepository) FindByCombineMode(ctx context.Context, ids []int64, mode models.CombineMode) ([]models.QuestionFile, error) {
	categoryCond := combineCondQuestionsAndTestCases
	if mode == models.CombineAnswersOnly {
		categoryCond = combineCondAnswersOnly
	}

	query := fmt.Sprintf(findByCombineModeQueryFmt, categoryCond)

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving question files: %w", err)
	}
	defer rows.Close()

	return scanQuestionFiles(rows)
}
