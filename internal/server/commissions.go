package server

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	reportdomain "github.com/railzwaylabs/commissions/internal/report/domain"
)

const runIDHeader = "X-Commission-Run-ID"

type resolveRateRequest struct {
	AchievementRatio   *float64 `json:"achievement_ratio"`
	IsHighDisplacement bool     `json:"is_high_displacement"`
	IsInternal         *bool    `json:"is_internal"`
}

// internalOrDefault treats a missing is_internal as an internal seller.
func internalOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

type calculateRequest struct {
	SaleValue          *float64 `json:"sale_value"`
	TargetValue        *float64 `json:"target_value"`
	IsHighDisplacement bool     `json:"is_high_displacement"`
	IsInternal         *bool    `json:"is_internal"`
}

// @Summary      Seller Summary
// @Description  Commission totals per seller over the current ledgers
// @Tags         commissions
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /commissions/sellers [get]
func (s *Server) GetSellerSummary(c *gin.Context) {
	resp, err := s.commissionSvc.ComputeSellerSummary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      City Summary
// @Description  Commission totals per city. Rewrites the commission ledger.
// @Tags         commissions
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /commissions/cities [get]
func (s *Server) GetCitySummary(c *gin.Context) {
	resp, err := s.commissionSvc.ComputeCitySummary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondWithWarnings(c, resp, resp.Warnings)
}

// @Summary      Seller Orders
// @Description  Per-order commission detail of one seller
// @Tags         commissions
// @Produce      json
// @Param        name  path  string  true  "Seller name"
// @Success      200  {object}  DataWithWarningsResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /commissions/sellers/{name}/orders [get]
func (s *Server) GetSellerOrders(c *gin.Context) {
	resp, err := s.commissionSvc.ComputeOrderCommissions(c.Request.Context(), c.Param("name"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondWithWarnings(c, resp, resp.Warnings)
}

// @Summary      Resolve Rate
// @Description  Commission rate for an achievement ratio and classification
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        request body resolveRateRequest true "Resolve Rate Request"
// @Success      200  {object}  DataWithWarningsResponse
// @Router       /commissions/rate [post]
func (s *Server) ResolveRate(c *gin.Context) {
	var req resolveRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.AchievementRatio == nil || *req.AchievementRatio < 0 || math.IsInf(*req.AchievementRatio, 0) {
		AbortWithError(c, commissiondomain.ErrInvalidRatio)
		return
	}

	resp := s.commissionSvc.ResolveRate(c.Request.Context(), *req.AchievementRatio, req.IsHighDisplacement, internalOrDefault(req.IsInternal))
	respondWithWarnings(c, resp, resp.Warnings)
}

// @Summary      Calculate Commission
// @Description  Commission of a single sale against its target value
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        request body calculateRequest true "Calculate Request"
// @Success      200  {object}  DataWithWarningsResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /commissions/calculate [post]
func (s *Server) CalculateCommission(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.TargetValue == nil {
		AbortWithError(c, commissiondomain.ErrInvalidTarget)
		return
	}
	if req.SaleValue == nil {
		AbortWithError(c, commissiondomain.ErrInvalidSaleValue)
		return
	}

	resp, err := s.commissionSvc.CalculateCommission(c.Request.Context(), commissiondomain.CalculateRequest{
		SaleValue:          *req.SaleValue,
		TargetValue:        *req.TargetValue,
		IsHighDisplacement: req.IsHighDisplacement,
		IsInternal:         internalOrDefault(req.IsInternal),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondWithWarnings(c, resp, resp.Warnings)
}

// @Summary      Process Commissions
// @Description  Persist a commission run and download its PDF report
// @Tags         commissions
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      400  {object}  ErrorResponse
// @Router       /commissions/process [post]
func (s *Server) ProcessCommissions(c *gin.Context) {
	run, err := s.commissionSvc.ProcessCommissions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.reportSvc.Render(c.Request.Context(), run)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header(runIDHeader, run.ID)
	respondDocument(c, doc)
}

// @Summary      List Runs
// @Description  Most recent commission runs
// @Tags         commissions
// @Produce      json
// @Param        limit  query  int  false  "Limit"
// @Success      200  {object}  DataResponse
// @Router       /commissions/runs [get]
func (s *Server) ListRuns(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be an integer"))
			return
		}
		limit = v
	}

	runs, err := s.commissionSvc.ListRuns(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, runs)
}

// @Summary      Get Run
// @Tags         commissions
// @Produce      json
// @Param        id  path  string  true  "Run ID"
// @Success      200  {object}  DataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /commissions/runs/{id} [get]
func (s *Server) GetRun(c *gin.Context) {
	run, err := s.commissionSvc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, run)
}

// @Summary      Export Run
// @Description  Download the seller summaries of a run as CSV or JSON
// @Tags         commissions
// @Produce      text/csv
// @Produce      json
// @Param        id      path   string  true   "Run ID"
// @Param        format  query  string  false  "csv or json"
// @Success      200  {file}  binary
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /commissions/runs/{id}/export [get]
func (s *Server) ExportRun(c *gin.Context) {
	format, err := reportdomain.ParseExportFormat(strings.ToLower(c.DefaultQuery("format", string(reportdomain.ExportFormatCSV))))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	run, err := s.commissionSvc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.reportSvc.Export(c.Request.Context(), run, format)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header(runIDHeader, run.ID)
	respondDocument(c, doc)
}

// @Summary      Commission Records
// @Description  The commission ledger written by the last city summary
// @Tags         commissions
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /commissions/records [get]
func (s *Server) ListCommissionRecords(c *gin.Context) {
	records, err := s.commissionSvc.ListRecords(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, records)
}
