package httputil

import (
	"github.com/gin-gonic/gin"
	"github.com/mediatekformation/internal/validation"
)

// ParseFormationID validates and returns the formation id from the URL parameter
func ParseFormationID(c *gin.Context) (int64, error) {
	return validation.ParseID(c.Param("id"))
}

// SearchValue reads a search value from the submitted form, then from the query string
func SearchValue(c *gin.Context, name string) string {
	if value, ok := c.GetPostForm(name); ok {
		return value
	}
	return c.Query(name)
}

// TableParam returns the optional table alias segment of a listing route
func TableParam(c *gin.Context) string {
	return c.Param("table")
}
