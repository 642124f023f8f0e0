package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/swasthya/migrant-access-api/internal/models"
	"github.com/swasthya/migrant-access-api/internal/service"
	"github.com/swasthya/migrant-access-api/internal/utils"
)

// AccessHandler handles access request and verification HTTP requests
type AccessHandler struct {
	requestService  *service.AccessRequestService
	verifierService *service.VerifierService
}

// NewAccessHandler creates a new access handler instance
func NewAccessHandler(requestService *service.AccessRequestService, verifierService *service.VerifierService) *AccessHandler {
	return &AccessHandler{
		requestService:  requestService,
		verifierService: verifierService,
	}
}

// CreateRequest handles POST /access/request. The requester identity comes
// from the Requester-ID header; the one-time code is delivered out of band
// and never appears in the response.
func (h *AccessHandler) CreateRequest(c *gin.Context) {
	var body models.AccessRequestCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	requesterID := utils.GetRequesterIDFromContext(c)
	if requesterID == "" {
		utils.SendValidationError(c, "Requester-ID header is required")
		return
	}

	request, svcErr := h.requestService.CreateRequest(c.Request.Context(), body.SubjectID, requesterID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendCreatedResponse(c, request.ToResponse())
}

// GetRequest handles GET /access/request/:requestId
func (h *AccessHandler) GetRequest(c *gin.Context) {
	request, svcErr := h.requestService.GetRequest(c.Request.Context(), c.Param("requestId"))
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, request.ToResponse())
}

// Verify handles POST /access/verify. On success the minted grant is
// returned; the caller presents its grantId as the Grant-ID header on
// subsequent data operations.
func (h *AccessHandler) Verify(c *gin.Context) {
	var body models.VerifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	grant, svcErr := h.verifierService.Verify(c.Request.Context(), body.RequestID, body.OTP)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, grant.ToResponse())
}
