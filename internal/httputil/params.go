package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseArticleID parses the ":id" path parameter as a positive article id.
func ParseArticleID(c *gin.Context) (uint64, error) {
	articleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || articleID == 0 {
		return 0, fmt.Errorf("invalid article id: must be a positive integer")
	}
	return articleID, nil
}

// RequireQuery returns a required query parameter.
func RequireQuery(c *gin.Context, name string) (string, error) {
	value := c.Query(name)
	if value == "" {
		return "", fmt.Errorf("missing %s query parameter", name)
	}
	return value, nil
}
