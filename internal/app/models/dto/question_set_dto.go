package dto

import "time"

// CreateQuestionSetRequest is the payload for creating a question set
type CreateQuestionSetRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200" example:"Algoritma & Struktur Data (2024)"`
	Description string `json:"description" binding:"max=2000" example:"Ujian akhir semester ganjil"`
}

// QuestionSetResponse represents a question set in API responses
type QuestionSetResponse struct {
	ID          int64                  `json:"id" example:"5"`
	Title       string                 `json:"title" example:"Algoritma & Struktur Data (2024)"`
	Description string                 `json:"description,omitempty"`
	Files       []QuestionFileResponse `json:"files,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// QuestionFileResponse represents one stored file in API responses
type QuestionFileResponse struct {
	ID            int64     `json:"id" example:"123"`
	QuestionSetID int64     `json:"questionSetId" example:"5"`
	OriginalName  string    `json:"originalName" example:"soal_uas.pdf"`
	Format        string    `json:"format" example:"PDF"`
	Category      string    `json:"category" example:"questions"`
	FileSize      int64     `json:"fileSize" example:"1048576"`
	CreatedAt     time.Time `json:"createdAt"`
}
