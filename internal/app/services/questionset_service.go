package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/app/models/dto"
	"github.com/pradipta/banksoal/internal/app/repositories"
	"github.com/pradipta/banksoal/internal/pkg/apperrors"
	"github.com/pradipta/banksoal/internal/pkg/filestorage"
	"github.com/pradipta/banksoal/internal/pkg/helpers"
)

// QuestionSetService defines the interface for question set operations
type QuestionSetService interface {
	GetAllSets(ctx context.Context, page, pageSize int) ([]dto.QuestionSetResponse, int64, error)
	GetSetByID(ctx context.Context, id int64) (*dto.QuestionSetResponse, error)
	CreateSet(ctx context.Context, req *dto.CreateQuestionSetRequest, ownerID *int64) (*dto.QuestionSetResponse, error)
	DeleteSet(ctx context.Context, id int64) error
	AddFile(ctx context.Context, questionSetID int64, category string, fileHeader *multipart.FileHeader) (*dto.QuestionFileResponse, error)
	RemoveFile(ctx context.Context, questionSetID, fileID int64) error
}

// questionSetServiceImpl implements QuestionSetService
type questionSetServiceImpl struct {
	setRepo     *repositories.QuestionSetRepository
	fileRepo    *repositories.QuestionFileRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewQuestionSetService creates a new QuestionSetService
func NewQuestionSetService(
	setRepo *repositories.QuestionSetRepository,
	fileRepo *repositories.QuestionFileRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) QuestionSetService {
	return &questionSetServiceImpl{
		setRepo:     setRepo,
		fileRepo:    fileRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func toQuestionFileResponse(file models.QuestionFile) dto.QuestionFileResponse {
	return dto.QuestionFileResponse{
		ID:            file.ID,
		QuestionSetID: file.QuestionSetID,
		OriginalName:  file.OriginalName,
		Format:        file.Format,
		Category:      file.Category,
		FileSize:      file.FileSize,
		CreatedAt:     file.CreatedAt,
	}
}

func toQuestionSetResponse(set *models.QuestionSet, files []models.QuestionFile) *dto.QuestionSetResponse {
	resp := &dto.QuestionSetResponse{
		ID:          set.ID,
		Title:       set.Title,
		Description: set.Description,
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
	for _, file := range files {
		resp.Files = append(resp.Files, toQuestionFileResponse(file))
	}
	return resp
}

// GetAllSets lists question sets with pagination
func (s *questionSetServiceImpl) GetAllSets(ctx context.Context, page, pageSize int) ([]dto.QuestionSetResponse, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	sets, total, err := s.setRepo.GetAll(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting question sets: %w", err)
	}

	responses := make([]dto.QuestionSetResponse, 0, len(sets))
	for i := range sets {
		responses = append(responses, *toQuestionSetResponse(&sets[i], nil))
	}
	return responses, total, nil
}

// GetSetByID retrieves one question set including its files
func (s *questionSetServiceImpl) GetSetByID(ctx context.Context, id int64) (*dto.QuestionSetResponse, error) {
	set, err := s.setRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.FindByQuestionSet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting question set files: %w", err)
	}

	return toQuestionSetResponse(set, files), nil
}

// CreateSet creates a new question set
func (s *questionSetServiceImpl) CreateSet(ctx context.Context, req *dto.CreateQuestionSetRequest, ownerID *int64) (*dto.QuestionSetResponse, error) {
	set := &models.QuestionSet{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	id, err := s.setRepo.Create(ctx, set)
	if err != nil {
		return nil, fmt.Errorf("error creating question set: %w", err)
	}

	created, err := s.setRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toQuestionSetResponse(created, nil), nil
}

// DeleteSet soft deletes a question set
func (s *questionSetServiceImpl) DeleteSet(ctx context.Context, id int64) error {
	return s.setRepo.SoftDelete(ctx, id)
}

// AddFile stores an uploaded file and records its metadata. The format is
// derived from the filename extension; anything outside PDF/DOCX/TXT is
// rejected up front rather than producing a record the pipeline would skip.
func (s *questionSetServiceImpl) AddFile(ctx context.Context, questionSetID int64, category string, fileHeader *multipart.FileHeader) (*dto.QuestionFileResponse, error) {
	if _, err := s.setRepo.GetByID(ctx, questionSetID); err != nil {
		return nil, err
	}

	format, ok := models.ParseFileFormat(filepath.Ext(fileHeader.Filename))
	if !ok {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("unsupported file extension %q, expected .pdf, .docx or .txt", filepath.Ext(fileHeader.Filename)))
	}

	if !validCategory(category) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("unknown category %q", category))
	}

	storagePath, err := s.fileStorage.SaveFile(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	file := &models.QuestionFile{
		QuestionSetID: questionSetID,
		OriginalName:  fileHeader.Filename,
		StoragePath:   storagePath,
		Format:        string(format),
		Category:      category,
		FileSize:      fileHeader.Size,
	}

	id, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		// Keep storage and catalog consistent on insert failure
		if delErr := s.fileStorage.DeleteFile(storagePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", storagePath).Msg("Failed to clean up stored file after insert failure")
		}
		return nil, fmt.Errorf("error recording file: %w", err)
	}
	file.ID = id

	resp := toQuestionFileResponse(*file)
	return &resp, nil
}

// RemoveFile deletes a file record and its stored bytes
func (s *questionSetServiceImpl) RemoveFile(ctx context.Context, questionSetID, fileID int64) error {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file.QuestionSetID != questionSetID {
		return apperrors.ErrQuestionFileNotFound
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(file.StoragePath); err != nil {
		s.logger.Warn().Err(err).Str("path", file.StoragePath).Msg("Failed to delete stored file")
	}

	return nil
}

// validCategory accepts the three known categories, including ordinal
// suffixed answer keys ("answers1", "answers2").
func validCategory(category string) bool {
	if category == models.CategoryQuestions || category == models.CategoryTestCases {
		return true
	}
	if len(category) >= len(models.CategoryAnswers) && category[:len(models.CategoryAnswers)] == models.CategoryAnswers {
		for _, r := range category[len(models.CategoryAnswers):] {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}
