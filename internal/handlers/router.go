package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/mcq-bank-service/internal/services"
	"github.com/SAP-F-2025/mcq-bank-service/internal/utils"
)

type HandlerManager struct {
	topicHandler      *TopicHandler
	subtopicHandler   *SubtopicHandler
	questionHandler   *QuestionHandler
	assignmentHandler *AssignmentHandler
	textbookHandler   *TextbookHandler
	worksheetHandler  *WorksheetHandler
	serviceManager    services.ServiceManager
	adminPassword     string
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, adminPassword string) *HandlerManager {
	return &HandlerManager{
		topicHandler:      NewTopicHandler(serviceManager.Topic(), logger),
		subtopicHandler:   NewSubtopicHandler(serviceManager.Subtopic(), logger),
		questionHandler:   NewQuestionHandler(serviceManager.Question(), logger),
		assignmentHandler: NewAssignmentHandler(serviceManager.Assignment(), logger),
		textbookHandler:   NewTextbookHandler(serviceManager.Textbook(), logger),
		worksheetHandler:  NewWorksheetHandler(serviceManager.Worksheet(), logger),
		serviceManager:    serviceManager,
		adminPassword:     adminPassword,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.health)

	v1 := router.Group("/api/v1")
	{
		topics := v1.Group("/topics")
		{
			topics.GET("", hm.topicHandler.ListTopics)
			topics.GET("/:tId", hm.topicHandler.GetTopic)
			topics.GET("/:tId/subtopics", hm.subtopicHandler.ListSubtopics)
		}

		questions := v1.Group("/questions")
		{
			questions.GET("", hm.questionHandler.BrowseQuestions)
			questions.GET("/years", hm.questionHandler.ListYears)
			questions.GET("/by-year/:year", hm.questionHandler.ListByYear)
			questions.GET("/:qId", hm.questionHandler.GetQuestion)
		}

		textbooks := v1.Group("/textbooks")
		{
			textbooks.GET("", hm.textbookHandler.ListTextbooks)
			textbooks.GET("/:tbId", hm.textbookHandler.GetTextbook)
			textbooks.GET("/:tbId/chapters", hm.textbookHandler.GetChapters)
		}

		worksheets := v1.Group("/worksheets")
		{
			worksheets.GET("/options", hm.worksheetHandler.GetOptions)
			worksheets.POST("", hm.worksheetHandler.GenerateWorksheet)
			worksheets.POST("/export", hm.worksheetHandler.ExportWorksheet)
		}

		// Editing routes behind the shared admin password
		admin := v1.Group("/admin")
		admin.Use(AdminGate(hm.adminPassword))
		{
			admin.GET("/session", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

			admin.PUT("/topics", hm.topicHandler.SaveTopics)
			admin.POST("/topics/:tId/subtopics", hm.subtopicHandler.CreateSubtopic)
			admin.GET("/topics/:tId/assignments", hm.assignmentHandler.GetAssignments)
			admin.PUT("/topics/:tId/assignments", hm.assignmentHandler.SaveAssignments)

			admin.PUT("/subtopics/:stId", hm.subtopicHandler.UpdateSubtopic)
			admin.DELETE("/subtopics/:stId", hm.subtopicHandler.DeleteSubtopic)

			admin.POST("/textbooks/drafts", hm.textbookHandler.CreateDraft)
			admin.PUT("/textbooks/:tbId", hm.textbookHandler.SaveTextbook)
			admin.DELETE("/textbooks/:tbId", hm.textbookHandler.DeleteTextbook)
		}
	}
}

func (hm *HandlerManager) health(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "mcq-bank-service",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mcq-bank-service",
	})
}
