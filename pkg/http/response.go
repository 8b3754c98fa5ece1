package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes data as-is with status 200.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// DetailResponse writes an error body carrying a detail message.
func DetailResponse(c echo.Context, status int, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Detail: detail})
}

// NotFoundResponse writes a 404 with detail.
func NotFoundResponse(c echo.Context, detail interface{}) error {
	return DetailResponse(c, http.StatusNotFound, detail)
}

// InternalErrorResponse writes a 500 with detail.
func InternalErrorResponse(c echo.Context, detail interface{}) error {
	return DetailResponse(c, http.StatusInternalServerError, detail)
}

// BadRequestResponse writes a 400 with detail, typically a list of
// ValidationError.
func BadRequestResponse(c echo.Context, detail interface{}) error {
	return DetailResponse(c, http.StatusBadRequest, detail)
}
