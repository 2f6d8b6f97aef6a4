// internal/interfaces/http/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idParam := c.Param(name)
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// parseQueryID parses a numeric query parameter value
func parseQueryID(c *gin.Context, value, name string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// respondLookupError maps errors from by-ID lookups: a missing row is 404,
// everything else is a client error with the service's message.
func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
	})
}

// respondMutationError maps errors from create/update/delete operations.
// A missing referenced row, a duplicate and a foreign key violation are all
// client errors; validation failures carry the service's message.
func respondMutationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
	})
}
