package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse wraps a successful payload
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse wraps an error payload
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   interface{} `json:"error"`
}

// ErrorBody is the error object carried by ErrorResponse
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SendSuccess writes a success envelope with the given status
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// SendError writes an error envelope with the given status and code
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message},
	})
}

// SendAppError writes an AppError including its details
func SendAppError(c *gin.Context, status int, err *AppError) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   ErrorBody{Code: err.Code, Message: err.Message, Details: err.Details},
	})
}
