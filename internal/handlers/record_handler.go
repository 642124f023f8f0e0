package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/swasthya/migrant-access-api/internal/models"
	"github.com/swasthya/migrant-access-api/internal/service"
	"github.com/swasthya/migrant-access-api/internal/utils"
)

// RecordHandler handles grant-gated migrant data HTTP requests. Every
// endpoint requires the Grant-ID header.
type RecordHandler struct {
	recordService  *service.RecordService
	summaryService *service.SummaryService
}

// NewRecordHandler creates a new record handler instance
func NewRecordHandler(recordService *service.RecordService, summaryService *service.SummaryService) *RecordHandler {
	return &RecordHandler{
		recordService:  recordService,
		summaryService: summaryService,
	}
}

func requireGrantID(c *gin.Context) (string, bool) {
	grantID := utils.GetGrantIDFromContext(c)
	if grantID == "" {
		utils.SendValidationError(c, "Grant-ID header is required")
		return "", false
	}
	return grantID, true
}

// GetProfile handles GET /access/profile/:migrantId
func (h *RecordHandler) GetProfile(c *gin.Context) {
	grantID, ok := requireGrantID(c)
	if !ok {
		return
	}

	migrant, svcErr := h.recordService.ReadProfile(c.Request.Context(), grantID, c.Param("migrantId"))
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, migrant)
}

// ListRecords handles GET /access/records/:migrantId
func (h *RecordHandler) ListRecords(c *gin.Context) {
	grantID, ok := requireGrantID(c)
	if !ok {
		return
	}

	records, svcErr := h.recordService.ReadRecords(c.Request.Context(), grantID, c.Param("migrantId"))
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, models.HealthRecordListResponse{
		Records: records,
		Count:   len(records),
	})
}

// CreateRecord handles POST /access/health-records/:migrantId
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	grantID, ok := requireGrantID(c)
	if !ok {
		return
	}

	var body models.HealthRecordCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	record, svcErr := h.recordService.CreateRecord(c.Request.Context(), grantID, c.Param("migrantId"), body.Title, body.Content)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendCreatedResponse(c, record)
}

// GetSummary handles GET /access/aiSummary/:migrantId
func (h *RecordHandler) GetSummary(c *gin.Context) {
	grantID, ok := requireGrantID(c)
	if !ok {
		return
	}

	summary, svcErr := h.summaryService.Summarize(c.Request.Context(), grantID, c.Param("migrantId"))
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, summary)
}
