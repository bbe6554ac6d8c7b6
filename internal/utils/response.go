// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func UnauthenticatedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Not authenticated"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHENTICATED", message, nil)
}

func InvalidCredentialResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIAL", "Invalid token", nil)
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	ErrorResponse(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", errors)
}

// PersistenceFailureResponse surfaces a storage failure with the underlying
// cause text attached. There is no retry path.
func PersistenceFailureResponse(c *gin.Context, err error) {
	message := "Internal server error"
	if err != nil {
		message = err.Error()
	}
	ErrorResponse(c, http.StatusInternalServerError, "PERSISTENCE_FAILURE", message, nil)
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}
