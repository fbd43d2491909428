package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"floral-studio/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses.
// The error is attached to the context so the request logger records it.
func handleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		response.SendAppError(c, response.HTTPStatus(appErr.Code), appErr)
		return
	}

	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// sendDenied reports a guarded operation the acting user may not perform
func sendDenied(c *gin.Context) {
	response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "You are not allowed to perform this action")
}

// parseIDParam reads a uuid path parameter, writing a validation error when it is malformed
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendAppError(c, http.StatusBadRequest, response.NewValidationError("Invalid "+name, name))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, writing a validation error on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return false
	}
	return true
}
