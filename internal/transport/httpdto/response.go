package httpdto

import "github.com/gin-gonic/gin"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewSuccessResponse builds the success envelope. The payload, when present,
// is placed under key.
func NewSuccessResponse(message, key string, payload any) gin.H {
	body := gin.H{
		"status":  StatusSuccess,
		"message": message,
	}
	if key != "" {
		body[key] = payload
	}
	return body
}

func NewErrorResponse(message string) gin.H {
	return gin.H{
		"status":  StatusError,
		"message": message,
	}
}
