// Package response defines the JSON envelope shared by every API reply.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the success envelope.
type Body struct {
	Data any `json:"data"`
}

// ErrorBody is the failure envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-checkable error kind plus optional
// field-level validation detail.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success writes a 200 with the data envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Data: data})
}

// Error writes a failure with the given status and kind.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// ValidationError writes a 400 with per-field detail.
func ValidationError(c *gin.Context, message string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: ErrorDetail{
		Code:    "BAD_REQUEST",
		Message: message,
		Fields:  fields,
	}})
}
