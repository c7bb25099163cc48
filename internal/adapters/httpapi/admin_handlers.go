// internal/adapters/httpapi/admin_handlers.go
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) platformStats(c *gin.Context) {
	stats, err := s.admin.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) adminRetailers(c *gin.Context) {
	retailers, err := s.admin.Retailers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, retailers)
}
