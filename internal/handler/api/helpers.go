package api

import (
	"net/http"

	"vehicle-care-booking/internal/handler/httperr"
	"vehicle-care-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON accepts an empty body for requests whose fields are all optional.
func bindJSON(c *gin.Context, dst any, optional bool) bool {
	if optional && c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, validationDetail(err))
		return false
	}
	return true
}
