package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	dashboarddomain "github.com/udyamworks/billbook/internal/dashboard/domain"
)

func (s *Server) GetDashboard(c *gin.Context) {
	startDate, err := parseOptionalTime(c.Query("start_date"), false)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}
	endDate, err := parseOptionalTime(c.Query("end_date"), true)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}

	resp, err := s.dashboardSvc.Summary(c.Request.Context(), dashboarddomain.Filter{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
