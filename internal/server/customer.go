package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/udyamworks/billbook/internal/customer/domain"
)

type customerRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	GSTIN    string `json:"gstin" binding:"omitempty,gstin"`
	Phone1   string `json:"phone_1"`
	Phone2   string `json:"phone_2"`
	Email1   string `json:"email_1" binding:"omitempty,email"`
	Email2   string `json:"email_2" binding:"omitempty,email"`
	Address1 string `json:"address_1"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Address2 string `json:"address_2"`
	City2    string `json:"city_2"`
	State2   string `json:"state_2"`
	Pincode2 string `json:"pincode_2"`

	HasBusinessWithGST bool             `json:"has_business_with_gst"`
	Business           *businessRequest `json:"business"`
}

func (r customerRequest) toInput() customerdomain.CustomerInput {
	input := customerdomain.CustomerInput{
		Name:               r.Name,
		Nickname:           r.Nickname,
		GSTIN:              r.GSTIN,
		Phone1:             r.Phone1,
		Phone2:             r.Phone2,
		Email1:             r.Email1,
		Email2:             r.Email2,
		Address1:           r.Address1,
		City:               r.City,
		State:              r.State,
		Pincode:            r.Pincode,
		Address2:           r.Address2,
		City2:              r.City2,
		State2:             r.State2,
		Pincode2:           r.Pincode2,
		HasBusinessWithGST: r.HasBusinessWithGST,
	}
	if r.Business != nil {
		business := r.Business.toInput()
		input.Business = &business
	}
	return input
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	filter := customerdomain.ListFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: strings.TrimSpace(c.Query("sort_order")),
	}

	resp, err := s.customerSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.customerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
