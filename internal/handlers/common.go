package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// uintParam parses a numeric path parameter. Returns 0, false when the
// parameter is missing or malformed.
func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
