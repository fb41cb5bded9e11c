package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	referencedomain "github.com/udyamworks/billbook/internal/reference/domain"
)

func (s *Server) ListGSTRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.referenceSvc.GSTRates(c.Request.Context())})
}

func (s *Server) ListHSNCodes(c *gin.Context) {
	codes := s.referenceSvc.HSNCodes(c.Request.Context(), referencedomain.HSNFilter{
		Search: strings.TrimSpace(c.Query("search")),
	})
	c.JSON(http.StatusOK, gin.H{"data": codes})
}
