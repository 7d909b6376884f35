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

// QuestionSetRepository handles database operations for question sets
type QuestionSetRepository struct {
	db *pgxpool.Pool
}

// NewQuestionSetRepository creates a new QuestionSetRepository
func NewQuestionSetRepository(db *pgxpool.Pool) *QuestionSetRepository {
	return &QuestionSetRepository{db: db}
}

// Create creates a new question set
func (r *QuestionSetRepository) Create(ctx context.Context, set *models.QuestionSet) (int64, error) {
	query := `
		INSERT INTO question_sets (title, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, set.Title, set.Description, set.OwnerID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating question set: %w", err)
	}

	return id, nil
}

// GetByID retrieves a question set by ID; soft-deleted sets are not visible
func (r *QuestionSetRepository) GetByID(ctx context.Context, id int64) (*models.QuestionSet, error) {
	query := `
		SELECT id, title, description, owner_id, created_at, updated_at
		FROM question_sets
		WHERE id = $1 AND deleted_at IS NULL
	`

	var set models.QuestionSet
	err := r.db.QueryRow(ctx, query, id).Scan(
		&set.ID,
		&set.Title,
		&set.Description,
		&set.OwnerID,
		&set.CreatedAt,
		&set.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrQuestionSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting question set: %w", err)
	}

	return &set, nil
}

// GetAll lists question sets, newest first
func (r *QuestionSetRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]models.QuestionSet, int64, error) {
	countQuery := `SELECT COUNT(*) FROM question_sets WHERE deleted_at IS NULL`

	var total int64
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting question sets: %w", err)
	}

	query := `
		SELECT id, title, description, owner_id, created_at, updated_at
		FROM question_sets
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing question sets: %w", err)
	}
	defer rows.Close()

	var sets []models.QuestionSet
	for rows.Next() {
		var set models.QuestionSet
		if err := rows.Scan(
			&set.ID,
			&set.Title,
			&set.Description,
			&set.OwnerID,
			&set.CreatedAt,
			&set.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning question set: %w", err)
		}
		sets = append(sets, set)
	}

	return sets, total, rows.Err()
}

// FindTitles resolves question set summaries for the given IDs. Missing or
// soft-deleted sets are simply absent from the result.
func (r *QuestionSetRepository) FindTitles(ctx context.Context, ids []int64) (map[int64]models.QuestionSetSummary, error) {
	query := `
		SELECT id, title
		FROM question_sets
		WHERE id = ANY($1) AND deleted_at IS NULL
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving question set titles: %w", err)
	}
	defer rows.Close()

	titles := make(map[int64]models.QuestionSetSummary, len(ids))
	for rows.Next() {
		var summary models.QuestionSetSummary
		if err := rows.Scan(&summary.ID, &summary.Title); err != nil {
			return nil, fmt.Errorf("error scanning question set title: %w", err)
		}
		titles[summary.ID] = summary
	}

	return titles, rows.Err()
}

// SoftDelete marks a question set as deleted
func (r *QuestionSetRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE question_sets
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting question set: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrQuestionSetNotFound
	}

	return nil
}
