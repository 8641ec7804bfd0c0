package response

import (
	"github.com/gin-gonic/gin"
)

// Every JSON body carries "success" and "message"; payload keys such as
// "employees" or "employeeId" sit next to them at the top level.
type Envelope map[string]any

func Success(c *gin.Context, status int, message string, payload Envelope) {
	body := Envelope{
		"success": true,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	body := Envelope{
		"success": false,
		"message": message,
		"code":    errorCode,
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, status int, errorCode string, message string) {
	Error(c, status, errorCode, message, nil)
	c.Abort()
}
