package response

import "github.com/gin-gonic/gin"

// Body is the envelope every parkhub endpoint answers with. Data is set
// on success, Error on failure, never both.
type Body struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Body{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, Body{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}

// ErrorWithDetails carries per-field validation failures alongside the
// error code.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, Body{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message, Details: details},
	})
}
