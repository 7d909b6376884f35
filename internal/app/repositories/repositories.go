package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	QuestionSetRepository  *QuestionSetRepository
	QuestionFileRepository *QuestionFileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		QuestionSetRepository:  NewQuestionSetRepository(db),
		QuestionFileRepository: NewQuestionFileRepository(db),
	}
}
