package models

import (
	"path/filepath"
	"strings"
	"time"
)

// FileFormat represents a supported source document format
type FileFormat string

const (
	FormatPDF  FileFormat = "PDF"
	FormatDOCX FileFormat = "DOCX"
	FormatTXT  FileFormat = "TXT"
)

// ParseFileFormat maps a stored format value or file extension to a supported
// format. Matching is case-insensitive; a leading dot is ignored. The second
// return value is false for anything outside the three supported formats.
func ParseFileFormat(value string) (FileFormat, bool) {
	switch strings.ToUpper(strings.TrimPrefix(value, ".")) {
	case "PDF":
		return FormatPDF, true
	case "DOCX":
		return FormatDOCX, true
	case "TXT":
		return FormatTXT, true
	default:
		return "", false
	}
}

// File categories. An answers category may carry an ordinal suffix
// ("answers1", "answers2") when multiple answer keys exist for one set.
const (
	CategoryQuestions = "questions"
	CategoryAnswers   = "answers"
	CategoryTestCases = "testCases"
)

// QuestionFile represents one stored document belonging to a question set
type QuestionFile struct {
	ID            int64     `json:"id" db:"id"`
	QuestionSetID int64     `json:"questionSetId" db:"question_set_id"`
	OriginalName  string    `json:"originalName" db:"original_name"`
	StoragePath   string    `json:"storagePath" db:"storage_path"`
	Format        string    `json:"format" db:"format"`
	Category      string    `json:"category" db:"category"`
	FileSize      int64     `json:"fileSize" db:"file_size"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// FileFormat resolves the stored format value. Records with an out-of-band
// format are skipped by the pipeline, never fatal to a batch.
func (f QuestionFile) FileFormat() (FileFormat, bool) {
	return ParseFileFormat(f.Format)
}

// IsQuestions reports whether the file holds exam questions
func (f QuestionFile) IsQuestions() bool {
	return f.Category == CategoryQuestions
}

// IsAnswers reports whether the file is an answer key, including the
// ordinal-suffixed variants.
func (f QuestionFile) IsAnswers() bool {
	return strings.HasPrefix(f.Category, CategoryAnswers)
}

// IsTestCases reports whether the file holds test cases
func (f QuestionFile) IsTestCases() bool {
	return f.Category == CategoryTestCases
}

// Extension returns the original filename extension, dot included
func (f QuestionFile) Extension() string {
	return filepath.Ext(f.OriginalName)
}

// CombineMode selects which categories take part in a combine request.
type CombineMode string

const (
	// CombineQuestionsAndTestCases merges questions plus any inline test
	// cases; this is the default preview mode.
	CombineQuestionsAndTestCases CombineMode = "QUESTIONS_AND_TEST_CASES"
	// CombineAnswersOnly restricts the combine to answer-key files.
	CombineAnswersOnly CombineMode = "ANSWERS_ONLY"
)

// ParseCombineMode maps the `type` query parameter onto a combine mode.
// An empty or "questions" value selects the default mode.
func ParseCombineMode(value string) (CombineMode, bool) {
	switch strings.ToLower(value) {
	case "", "questions":
		return CombineQuestionsAndTestCases, true
	case "answers":
		return CombineAnswersOnly, true
	default:
		return "", false
	}
}

// NormalizedDocument is the ephemeral result of normalizing one source file
// into PDF form. It lives for the duration of a single request.
type NormalizedDocument struct {
	Source   QuestionFile
	PDFBytes []byte
}

// SkippedFile records a per-file pipeline failure that was excluded from the
// output instead of failing the batch.
type SkippedFile struct {
	File   QuestionFile
	Reason error
}
