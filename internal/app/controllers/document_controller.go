package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pradipta/banksoal/internal/app/models"
	"github.com/pradipta/banksoal/internal/app/models/dto"
	"github.com/pradipta/banksoal/internal/app/services"
	"github.com/pradipta/banksoal/internal/middleware"
	"github.com/pradipta/banksoal/internal/pkg/helpers"
	"github.com/pradipta/banksoal/internal/pkg/logger"
)

// DocumentController exposes the document pipeline over HTTP: merged PDF
// previews, multi-set PDF downloads and ZIP bundles.
type DocumentController struct {
	documentService services.DocumentService
	bundleService   services.BundleService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService, bundleService services.BundleService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		bundleService:   bundleService,
	}
}

// CombinePreview handles the single-set merged PDF preview
// @Summary Preview combined question set PDF
// @Description Merges a question set's files into a single PDF served inline. type=answers restricts to answer keys; the default combines questions and test cases.
// @Tags documents
// @Produce application/pdf
// @Param id path int true "Question set ID"
// @Param type query string false "Combine mode (questions, answers)"
// @Success 200 {file} file "Merged PDF"
// @Failure 400 {object} dto.ErrorResponse "Invalid question set ID or type"
// @Failure 404 {object} dto.ErrorResponse "Nothing to combine"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /question-sets/{id}/combine-preview [get]
func (c *DocumentController) CombinePreview(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid question set ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	mode, ok := models.ParseCombineMode(ctx.Query("type"))
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid type, expected questions or answers")
		errorDetail = errorDetail.WithField("type")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.documentService.Combine(ctx.Request.Context(), []int64{id}, mode)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`inline; filename="question_set_%d.pdf"`, id))
	ctx.Data(http.StatusOK, "application/pdf", result.PDF)
}

// CombineDownload handles the multi-set merged PDF download
// @Summary Download combined PDF across question sets
// @Description Merges the questions of multiple question sets into one PDF attachment.
// @Tags documents
// @Produce application/pdf
// @Param ids query string true "Comma separated question set IDs"
// @Success 200 {file} file "Merged PDF"
// @Failure 400 {object} dto.ErrorResponse "Missing or unparseable ids"
// @Failure 404 {object} dto.ErrorResponse "Nothing to combine"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /question-sets/combine-download [get]
func (c *DocumentController) CombineDownload(ctx *gin.Context) {
	ids, ok := parseIDsParam(ctx)
	if !ok {
		return
	}

	result, err := c.documentService.Combine(ctx.Request.Context(), ids, models.CombineQuestionsAndTestCases)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := "Gabungan_Soal_" + helpers.JoinIDs(ids) + ".pdf"
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "application/pdf", result.PDF)
}

// DownloadBundle handles the multi-set ZIP bundle download
// @Summary Download a ZIP bundle of question set materials
// @Description Streams a ZIP archive containing the merged questions PDF plus individual answer key and test case files, under a fixed folder layout.
// @Tags documents
// @Produce application/zip
// @Param ids query string true "Comma separated question set IDs"
// @Param formTitle query string false "Title used for the bundle filename"
// @Success 200 {file} file "ZIP bundle"
// @Failure 400 {object} dto.ErrorResponse "Missing or unparseable ids"
// @Failure 404 {object} dto.ErrorResponse "No files found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /question-sets/download-bundle [get]
func (c *DocumentController) DownloadBundle(ctx *gin.Context) {
	ids, ok := parseIDsParam(ctx)
	if !ok {
		return
	}

	title := ctx.Query("formTitle")
	if title == "" {
		title = "Paket_Soal"
	}

	filename := helpers.SanitizeTitle(title) + "_BUNDLE.zip"

	// Headers are only committed on the first archive byte, so batch-level
	// failures still produce a clean JSON error response.
	w := &deferredBundleWriter{ctx: ctx, filename: filename}

	err := c.bundleService.WriteBundle(ctx.Request.Context(), ids, title, w)
	if err != nil {
		if w.started {
			// Bytes already on the wire; nothing left but to log and abort.
			logger.Error().Err(err).Str("filename", filename).Msg("Bundle streaming aborted mid-response")
			ctx.Abort()
			return
		}
		middleware.HandleAPIError(ctx, err)
	}
}

// parseIDsParam parses the required ids csv query parameter, responding with
// 400 itself when the parameter is missing or unparseable.
func parseIDsParam(ctx *gin.Context) ([]int64, bool) {
	raw := ctx.Query("ids")
	if raw == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing ids parameter")
		errorDetail = errorDetail.WithField("ids")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	ids, err := helpers.ParseIDList(raw)
	if err != nil || len(ids) == 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unparseable ids parameter")
		errorDetail = errorDetail.WithField("ids")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	return ids, true
}

// deferredBundleWriter commits response headers on the first write, keeping
// the response free for a JSON error as long as no archive bytes were sent.
type deferredBundleWriter struct {
	ctx      *gin.Context
	filename string
	started  bool
}

func (w *deferredBundleWriter) Write(p []byte) (int, error) {
	if !w.started {
		w.ctx.Header("Content-Type", "application/zip")
		w.ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, w.filename))
		w.ctx.Status(http.StatusOK)
		w.started = true
	}
	return w.ctx.Writer.Write(p)
}
