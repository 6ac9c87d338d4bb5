package server

import (
	"github.com/gin-gonic/gin"
	"github.com/railzwaylabs/commissions/internal/commission/calc"
)

const (
	simulationAnnuity     = "annuity"
	simulationGeometric   = "geometric"
	simulationProgressive = "progressive"
	simulationDiscount    = "discount"
)

type simulatePresentValueRequest struct {
	Method           string    `json:"method"`
	Total            float64   `json:"total,omitempty"`
	Installment      float64   `json:"installment,omitempty"`
	InstallmentCount int       `json:"installment_count"`
	MonthlyRate      float64   `json:"monthly_rate,omitempty"`
	Coefficients     []float64 `json:"coefficients,omitempty"`
	ListPrice        float64   `json:"list_price,omitempty"`
}

type simulatePresentValueResponse struct {
	Method           string                  `json:"method"`
	InstallmentCount int                     `json:"installment_count"`
	PresentValue     float64                 `json:"present_value"`
	Discount         *calc.DiscountBreakdown `json:"discount,omitempty"`
}

// @Summary      Simulate Present Value
// @Description  Run one of the present value calculators: annuity, geometric, progressive or discount
// @Tags         present-value
// @Accept       json
// @Produce      json
// @Param        request body simulatePresentValueRequest true "Simulation Request"
// @Success      200  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /present-value/simulate [post]
func (s *Server) SimulatePresentValue(c *gin.Context) {
	var req simulatePresentValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.InstallmentCount < 0 {
		AbortWithError(c, newValidationError("installment_count", "invalid_installment_count", "installment_count must not be negative"))
		return
	}
	if req.MonthlyRate < 0 {
		AbortWithError(c, newValidationError("monthly_rate", "invalid_monthly_rate", "monthly_rate must not be negative"))
		return
	}

	resp := simulatePresentValueResponse{Method: req.Method, InstallmentCount: req.InstallmentCount}
	switch req.Method {
	case simulationAnnuity, "":
		resp.Method = simulationAnnuity
		resp.PresentValue = calc.PresentValue(req.Total, req.InstallmentCount, req.MonthlyRate)
	case simulationGeometric:
		resp.PresentValue = calc.GeometricPresentValue(req.Installment, req.InstallmentCount, req.MonthlyRate)
	case simulationProgressive:
		if len(req.Coefficients) != req.InstallmentCount {
			AbortWithError(c, newValidationError("coefficients", "invalid_coefficients", "one coefficient is required per installment"))
			return
		}
		resp.PresentValue = calc.ProgressivePresentValue(req.Installment, req.InstallmentCount, req.Coefficients)
	case simulationDiscount:
		if req.ListPrice <= 0 {
			AbortWithError(c, newValidationError("list_price", "invalid_list_price", "list_price must be positive"))
			return
		}
		discount := calc.Discount(req.ListPrice, req.Installment, req.InstallmentCount, req.MonthlyRate)
		resp.PresentValue = discount.PresentValue
		resp.Discount = &discount
	default:
		AbortWithError(c, newValidationError("method", "invalid_method", "method must be annuity, geometric, progressive or discount"))
		return
	}

	respondData(c, resp)
}
