package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response represents the standard API response structure
type Response struct {
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Error types of an error Response.
const (
	InputException      = "InputException"
	ValidationException = "ValidationException"
	NotFoundException   = "NotFoundException"
	ServerException     = "ServerException"
)

// SuccessResponse sends a successful JSON response
func SuccessResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error JSON response
func ErrorResponse(c echo.Context, httpStatus int, errorType, message string) error {
	return c.JSON(httpStatus, Response{
		Status:    "error",
		ErrorType: errorType,
		Message:   message,
	})
}

// ValidationResponse sends the per field messages of a rejected edit.
func ValidationResponse(c echo.Context, message string, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, Response{
		Status:    "error",
		Data:      fields,
		ErrorType: ValidationException,
		Message:   message,
	})
}
