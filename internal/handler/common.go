package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"consite/internal/errors"
)

// respondError maps a domain error onto the standardized HTTP error shape.
func respondError(err error) *echo.HTTPError {
	mapped := errors.MapToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errors.BadRequest("invalid " + name + " parameter")
	}
	return uint(id), nil
}

// pagination reads page/size query parameters with sane defaults.
func pagination(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, _ = strconv.Atoi(c.QueryParam("size"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}

// pagedResponse is the envelope for paged listings.
type pagedResponse struct {
	Content interface{} `json:"content"`
	Page    int         `json:"page"`
	Size    int         `json:"size"`
	Total   int64       `json:"total"`
}
