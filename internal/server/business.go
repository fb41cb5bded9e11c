package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	businessdomain "github.com/udyamworks/billbook/internal/business/domain"
)

type businessRequest struct {
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
	GSTIN     string `json:"gstin" binding:"omitempty,gstin"`
	PAN       string `json:"pan"`
	StateCode string `json:"state_code"`
	Phone1    string `json:"phone_1"`
	Phone2    string `json:"phone_2"`
	Email1    string `json:"email_1" binding:"omitempty,email"`
	Email2    string `json:"email_2" binding:"omitempty,email"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Website   string `json:"website"`
	Notes     string `json:"notes"`
}

func (r businessRequest) toInput() businessdomain.BusinessInput {
	return businessdomain.BusinessInput{
		LegalName: r.LegalName,
		TradeName: r.TradeName,
		GSTIN:     r.GSTIN,
		PAN:       r.PAN,
		StateCode: r.StateCode,
		Phone1:    r.Phone1,
		Phone2:    r.Phone2,
		Email1:    r.Email1,
		Email2:    r.Email2,
		Address1:  r.Address1,
		Address2:  r.Address2,
		City:      r.City,
		State:     r.State,
		Pincode:   r.Pincode,
		Website:   r.Website,
		Notes:     r.Notes,
	}
}

func (s *Server) GetBusinessSettings(c *gin.Context) {
	settings, err := s.businessSvc.GetSettings(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if settings == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

func (s *Server) UpsertBusinessSettings(c *gin.Context) {
	var req businessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.businessSvc.UpsertSettings(c.Request.Context(), req.toInput())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UploadBusinessLogo(c *gin.Context) {
	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		AbortWithError(c, newValidationError("logo", "invalid_logo", "logo file is required"))
		return
	}
	defer file.Close()

	if header.Size > s.cfg.MaxLogoBytes {
		AbortWithError(c, newValidationError("logo", "logo_too_large", "logo exceeds the size limit"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxLogoBytes+1))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if int64(len(data)) > s.cfg.MaxLogoBytes {
		AbortWithError(c, newValidationError("logo", "logo_too_large", "logo exceeds the size limit"))
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		AbortWithError(c, newValidationError("logo", "invalid_logo", "logo must be an image"))
		return
	}

	resp, err := s.businessSvc.AttachLogo(c.Request.Context(), contentType, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateBusiness(c *gin.Context) {
	var req businessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.businessSvc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBusinesses(c *gin.Context) {
	filter := businessdomain.ListFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: strings.TrimSpace(c.Query("sort_order")),
	}

	resp, err := s.businessSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBusinessByID(c *gin.Context) {
	resp, err := s.businessSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBusiness(c *gin.Context) {
	var req businessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.businessSvc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBusiness(c *gin.Context) {
	if err := s.businessSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
