package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/htkhoa/k12-curriculum-backend/controllers"
	"github.com/htkhoa/k12-curriculum-backend/middleware"
	"github.com/htkhoa/k12-curriculum-backend/ws"
	"gorm.io/gorm"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	curriculum := api.Group("/curriculum")
	{
		curriculum.POST("/validate", controllers.ValidateCurriculum)
		curriculum.POST("/load-generic", controllers.LoadGenericCurriculum)
		curriculum.POST("/parse-pdf", controllers.ParsePDFCurriculum)
		curriculum.POST("/parse-word", controllers.ParseWordCurriculum)
		curriculum.POST("/parse-text", controllers.ParseTextCurriculum)

		curriculum.GET("/content-areas", controllers.ListContentAreas)
		curriculum.GET("/content-areas/:id/standards", controllers.ListStandardsByContentArea)
		curriculum.GET("/standards/:id/sub-lessons", controllers.ListSubLessonsByStandard)
		curriculum.GET("/standards/:id/enrichment", controllers.GetStandardEnrichment)
	}

	subjects := api.Group("/subjects")
	{
		subjects.GET("", controllers.GetSubjects)
		subjects.GET("/:id", controllers.GetSubjectDetail)
	}

	frameworks := api.Group("/frameworks")
	{
		frameworks.GET("", controllers.GetFrameworks)
	}

	chat := api.Group("/chat")
	{
		chat.POST("/tutor", controllers.TutorChat)
		chat.GET("/history", controllers.GetChatHistory)
	}

	api.GET("/documents", controllers.GetDocuments)
	api.GET("/documents/:id", controllers.GetDocumentDetail)

	admin := api.Group("/admin")
	{
		admin.POST("/subjects", controllers.CreateSubject)
		admin.PATCH("/subjects/:id/toggle-status", controllers.ToggleSubjectStatus)

		admin.POST("/frameworks", controllers.CreateFramework)
		admin.PATCH("/frameworks/:id/toggle-status", controllers.ToggleFrameworkStatus)

		admin.DELETE("/documents/:id", controllers.DeleteDocument)
		admin.DELETE("/curriculum", controllers.ClearCurriculum)
	}

	r.GET("/ws/curriculum/:code", ws.HandleCurriculumWebSocket)
	r.GET("/ws/status", ws.HandleGlobalWebSocket)

	return r
}
