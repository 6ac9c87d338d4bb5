package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
)

type createPaymentMethodRequest struct {
	Name                string  `json:"name"`
	ApplyPresentValue   bool    `json:"apply_present_value"`
	MonthlyInterestRate float64 `json:"monthly_interest_rate"`
	ProgressiveTableID  string  `json:"progressive_table_id,omitempty"`
}

type updatePresentValueRequest struct {
	ApplyPresentValue   bool    `json:"apply_present_value"`
	MonthlyInterestRate float64 `json:"monthly_interest_rate"`
	ProgressiveTableID  string  `json:"progressive_table_id,omitempty"`
}

type createProgressiveTableRequest struct {
	Name         string    `json:"name"`
	Coefficients []float64 `json:"coefficients"`
}

// @Summary      Create Payment Method
// @Tags         payment_methods
// @Accept       json
// @Produce      json
// @Param        request body createPaymentMethodRequest true "Create Payment Method Request"
// @Success      200  {object}  DataResponse
// @Router       /payment_methods [post]
func (s *Server) CreatePaymentMethod(c *gin.Context) {
	var req createPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.methodSvc.Create(c.Request.Context(), paymentmethoddomain.CreateRequest{
		Name:                strings.TrimSpace(req.Name),
		ApplyPresentValue:   req.ApplyPresentValue,
		MonthlyInterestRate: req.MonthlyInterestRate,
		ProgressiveTableID:  strings.TrimSpace(req.ProgressiveTableID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Payment Methods
// @Tags         payment_methods
// @Produce      json
// @Param        status  query  string  false  "active or inactive"
// @Success      200  {object}  DataResponse
// @Router       /payment_methods [get]
func (s *Server) ListPaymentMethods(c *gin.Context) {
	resp, err := s.methodSvc.List(c.Request.Context(), paymentmethoddomain.ListRequest{
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Payment Method
// @Tags         payment_methods
// @Produce      json
// @Param        id  path  string  true  "Payment Method ID"
// @Success      200  {object}  DataResponse
// @Router       /payment_methods/{id} [get]
func (s *Server) GetPaymentMethod(c *gin.Context) {
	resp, err := s.methodSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Present Value Settings
// @Description  Linking a progressive table zeroes the monthly rate
// @Tags         payment_methods
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Payment Method ID"
// @Param        request body updatePresentValueRequest true "Present Value Settings"
// @Success      200  {object}  DataResponse
// @Router       /payment_methods/{id}/present_value [put]
func (s *Server) UpdatePaymentMethodPresentValue(c *gin.Context) {
	var req updatePresentValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.methodSvc.UpdatePresentValue(c.Request.Context(), paymentmethoddomain.UpdatePresentValueRequest{
		ID:                  strings.TrimSpace(c.Param("id")),
		ApplyPresentValue:   req.ApplyPresentValue,
		MonthlyInterestRate: req.MonthlyInterestRate,
		ProgressiveTableID:  strings.TrimSpace(req.ProgressiveTableID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Deactivate Payment Method
// @Tags         payment_methods
// @Produce      json
// @Param        id  path  string  true  "Payment Method ID"
// @Success      200  {object}  DataResponse
// @Router       /payment_methods/{id}/deactivate [post]
func (s *Server) DeactivatePaymentMethod(c *gin.Context) {
	resp, err := s.methodSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Payment Method
// @Tags         payment_methods
// @Produce      json
// @Param        id  path  string  true  "Payment Method ID"
// @Success      200  {object}  DataResponse
// @Router       /payment_methods/{id} [delete]
func (s *Server) DeletePaymentMethod(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.methodSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"id": id, "deleted": true})
}

// @Summary      Create Progressive Table
// @Description  One discount coefficient, in percent, per installment
// @Tags         progressive_tables
// @Accept       json
// @Produce      json
// @Param        request body createProgressiveTableRequest true "Create Progressive Table Request"
// @Success      200  {object}  DataResponse
// @Router       /progressive_tables [post]
func (s *Server) CreateProgressiveTable(c *gin.Context) {
	var req createProgressiveTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.methodSvc.CreateProgressiveTable(c.Request.Context(), paymentmethoddomain.CreateProgressiveTableRequest{
		Name:         strings.TrimSpace(req.Name),
		Coefficients: req.Coefficients,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Progressive Tables
// @Tags         progressive_tables
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /progressive_tables [get]
func (s *Server) ListProgressiveTables(c *gin.Context) {
	resp, err := s.methodSvc.ListProgressiveTables(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Progressive Table
// @Tags         progressive_tables
// @Produce      json
// @Param        id  path  string  true  "Progressive Table ID"
// @Success      200  {object}  DataResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /progressive_tables/{id} [delete]
func (s *Server) DeleteProgressiveTable(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.methodSvc.DeleteProgressiveTable(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"id": id, "deleted": true})
}
