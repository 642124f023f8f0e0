package router

import (
	"github.com/gin-gonic/gin"

	"github.com/swasthya/migrant-access-api/internal/handlers"
	"github.com/swasthya/migrant-access-api/internal/service"
)

// SetupRouter configures all API routes
func SetupRouter(
	requestService *service.AccessRequestService,
	verifierService *service.VerifierService,
	recordService *service.RecordService,
	summaryService *service.SummaryService,
) *gin.Engine {
	router := gin.Default()

	// Global middleware to extract identity headers and set context
	router.Use(func(c *gin.Context) {
		if requesterID := c.GetHeader("Requester-ID"); requesterID != "" {
			c.Set("requesterID", requesterID)
		}
		if grantID := c.GetHeader("Grant-ID"); grantID != "" {
			c.Set("grantID", grantID)
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Create handlers
	accessHandler := handlers.NewAccessHandler(requestService, verifierService)
	recordHandler := handlers.NewRecordHandler(recordService, summaryService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		access := v1.Group("/access")
		{
			access.POST("/request", accessHandler.CreateRequest)
			access.GET("/request/:requestId", accessHandler.GetRequest)
			access.POST("/verify", accessHandler.Verify)

			access.GET("/profile/:migrantId", recordHandler.GetProfile)
			access.GET("/records/:migrantId", recordHandler.ListRecords)
			access.POST("/health-records/:migrantId", recordHandler.CreateRecord)
			access.GET("/aiSummary/:migrantId", recordHandler.GetSummary)
		}
	}

	return router
}
