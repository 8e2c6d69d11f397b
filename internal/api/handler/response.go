package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type createdResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

var okResponse = successResponse{Success: true}

// normalizer is implemented by requests that tidy their fields before
// validation, e.g. trimming and lowercasing emails.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the request into req, normalizes it and runs its
// validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}
