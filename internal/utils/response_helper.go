package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasthya/migrant-access-api/internal/apperrors"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// SendServiceError translates a service error into its HTTP response.
func SendServiceError(c *gin.Context, err *apperrors.ServiceError) {
	c.JSON(apperrors.HTTPStatus(err), models.NewErrorResponse(err.Code, err.Error, err.ErrorDescription))
}

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.NewErrorResponse(errCode, message, details))
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, apperrors.InvalidRequestError.Code, message, details)
}

// SendValidationError sends a validation error response
func SendValidationError(c *gin.Context, details string) {
	SendErrorResponse(c, http.StatusBadRequest, apperrors.ValidationError.Code, "Validation failed", details)
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// GetRequesterIDFromContext extracts the requester identity set by the
// header middleware. Empty when the caller sent no Requester-ID header.
func GetRequesterIDFromContext(c *gin.Context) string {
	requesterID, exists := c.Get("requesterID")
	if !exists {
		return ""
	}
	return requesterID.(string)
}

// GetGrantIDFromContext extracts the grant identifier set by the header
// middleware. Empty when the caller sent no Grant-ID header.
func GetGrantIDFromContext(c *gin.Context) string {
	grantID, exists := c.Get("grantID")
	if !exists {
		return ""
	}
	return grantID.(string)
}
