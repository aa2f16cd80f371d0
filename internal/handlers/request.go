package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/store-rating/internal/auth"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/middleware"
)

// bindJSON decodes the body into dst and writes a 400 when it is not valid
// JSON. An empty body decodes to the zero value; field checks belong to
// the use cases.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (auth.Identity, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, middleware.ReasonMissingToken, "Access denied. No token provided.")
	}
	return user, ok
}
