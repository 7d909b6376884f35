package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pradipta/banksoal/internal/app/models/dto"
	"github.com/pradipta/banksoal/internal/app/services"
	"github.com/pradipta/banksoal/internal/middleware"
	"github.com/pradipta/banksoal/internal/pkg/helpers"
)

// QuestionSetController handles question set CRUD and file uploads
type QuestionSetController struct {
	questionSetService services.QuestionSetService
}

// NewQuestionSetController creates a new QuestionSetController
func NewQuestionSetController(questionSetService services.QuestionSetService) *QuestionSetController {
	return &QuestionSetController{questionSetService: questionSetService}
}

// GetAllQuestionSets handles listing question sets
// @Summary List question sets
// @Description Retrieves question sets with pagination
// @Tags question-sets
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=[]dto.QuestionSetResponse} "Question sets retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /question-sets [get]
func (c *QuestionSetController) GetAllQuestionSets(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", strconv.Itoa(helpers.DefaultPage)))
	if err != nil || page < 1 {
		page = helpers.DefaultPage
	}

	pageSize, err := strconv.Atoi(ctx.DefaultQuery("size", strconv.Itoa(helpers.DefaultPageSize)))
	if err != nil || pageSize <= 0 || pageSize > helpers.MaxPageSize {
		pageSize = helpers.DefaultPageSize
	}

	sets, total, err := c.questionSetService.GetAllSets(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"questionSets": sets,
		"totalItems":   total,
		"page":         page,
		"pageSize":     pageSize,
	}))
}

// GetQuestionSetByID handles retrieving one question set with its files
// @Summary Get question set by ID
// @Description Retrieves a question set including its stored files
// @Tags question-sets
// @Accept json
// @Produce json
// @Param id path int true "Question set ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionSetResponse} "Question set retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid question set ID"
// @Failure 404 {object} dto.ErrorResponse "Question set not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /question-sets/{id} [get]
func (c *QuestionSetController) GetQuestionSetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	set, err := c.questionSetService.GetSetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(set))
}

// CreateQuestionSet handles creating a question set
// @Summary Create a question set
// @Description Creates a new question set
// @Tags question-sets
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionSetRequest true "Question set payload"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionSetResponse} "Question set created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /question-sets [post]
func (c *QuestionSetController) CreateQuestionSet(ctx *gin.Context) {
	var req dto.CreateQuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var ownerID *int64
	if raw, exists := ctx.Get("userID"); exists {
		if id, isInt := raw.(int64); isInt {
			ownerID = &id
		}
	}

	created, err := c.questionSetService.CreateSet(ctx.Request.Context(), &req, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created))
}

// DeleteQuestionSet handles soft deleting a question set
// @Summary Delete a question set
// @Description Soft deletes a question set; its files stop resolving in the catalog
// @Tags question-sets
// @Produce json
// @Param id path int true "Question set ID"
// @Success 200 {object} dto.APIResponse "Question set deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Question set not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /question-sets/{id} [delete]
func (c *QuestionSetController) DeleteQuestionSet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.questionSetService.DeleteSet(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Question set deleted"}))
}

// AddFileToQuestionSet handles uploading a file into a question set
// @Summary Upload a file to a question set
// @Description Stores an uploaded PDF/DOCX/TXT file and records its metadata under the given category
// @Tags question-sets
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Question set ID"
// @Param category formData string true "File category (questions, answers, answersN, testCases)"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionFileResponse} "File uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Question set not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /question-sets/{id}/files [post]
func (c *QuestionSetController) AddFileToQuestionSet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid or missing file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	category := ctx.PostForm("category")

	created, err := c.questionSetService.AddFile(ctx.Request.Context(), id, category, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created))
}

// DeleteFileFromQuestionSet handles removing a stored file
// @Summary Delete a file from a question set
// @Description Deletes a file record and its stored bytes
// @Tags question-sets
// @Produce json
// @Param id path int true "Question set ID"
// @Param fileId path int true "File ID"
// @Success 200 {object} dto.APIResponse "File deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /question-sets/{id}/files/{fileId} [delete]
func (c *QuestionSetController) DeleteFileFromQuestionSet(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	fileID, err := strconv.ParseInt(ctx.Param("fileId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid file ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.questionSetService.RemoveFile(ctx.Request.Context(), id, fileID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "File deleted"}))
}

// parseIDParam parses the :id path parameter, responding with 400 itself on
// invalid input.
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid question set ID")
		errorDetail = errorDetail.WithDetails("Question set ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
