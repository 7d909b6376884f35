package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pradipta/banksoal/internal/app/controllers"
	"github.com/pradipta/banksoal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	questionSetController *controllers.QuestionSetController,
	documentController *controllers.DocumentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	questionSets := v1.Group("/question-sets")
	{
		// Public read and download routes. The download endpoints are
		// deliberately unauthenticated; shared exam material links must
		// work without an account.
		questionSets.GET("", questionSetController.GetAllQuestionSets)
		questionSets.GET("/combine-download", documentController.CombineDownload)
		questionSets.GET("/download-bundle", documentController.DownloadBundle)
		questionSets.GET("/:id", questionSetController.GetQuestionSetByID)
		questionSets.GET("/:id/combine-preview", documentController.CombinePreview)

		// Mutating routes require a verified caller
		protected := questionSets.Group("")
		protected.Use(authMiddleware.JWTAuth())
		{
			protected.POST("", questionSetController.CreateQuestionSet)
			protected.DELETE("/:id", questionSetController.DeleteQuestionSet)
			protected.POST("/:id/files", questionSetController.AddFileToQuestionSet)
			protected.DELETE("/:id/files/:fileId", questionSetController.DeleteFileFromQuestionSet)
		}
	}
}
