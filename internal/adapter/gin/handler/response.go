package handler

import (
	"github.com/gin-gonic/gin"

	pkgerrors "task-manager-service/pkg/errors"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// respondError translates a usecase error into the response envelope using
// the error taxonomy's status and code. Internal errors get a generic
// message so details stay in the logs.
func respondError(c *gin.Context, err error) {
	status := pkgerrors.HTTPStatus(err)

	message := err.Error()
	if status >= 500 {
		message = "An internal error occurred"
	}

	c.JSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Code:    pkgerrors.Code(err),
	})
}
