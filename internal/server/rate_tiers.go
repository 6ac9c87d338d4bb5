package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
)

type createRateTierRequest struct {
	IsInternal   bool     `json:"is_internal"`
	VehicleClass string   `json:"vehicle_class,omitempty"`
	MinRatio     *float64 `json:"min_ratio"`
	MaxRatio     *float64 `json:"max_ratio,omitempty"`
	Rate         *float64 `json:"rate"`
}

type updateRateTierRequest struct {
	VehicleClass *string  `json:"vehicle_class,omitempty"`
	MinRatio     *float64 `json:"min_ratio,omitempty"`
	MaxRatio     *float64 `json:"max_ratio,omitempty"`
	ClearMax     bool     `json:"clear_max_ratio,omitempty"`
	Rate         *float64 `json:"rate,omitempty"`
}

// @Summary      Create Rate Tier
// @Tags         rate_tiers
// @Accept       json
// @Produce      json
// @Param        request body createRateTierRequest true "Create Rate Tier Request"
// @Success      200  {object}  DataResponse
// @Router       /rate_tiers [post]
func (s *Server) CreateRateTier(c *gin.Context) {
	var req createRateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateTierSvc.Create(c.Request.Context(), ratetierdomain.CreateRequest{
		IsInternal:   req.IsInternal,
		VehicleClass: strings.TrimSpace(req.VehicleClass),
		MinRatio:     req.MinRatio,
		MaxRatio:     req.MaxRatio,
		Rate:         req.Rate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Rate Tiers
// @Tags         rate_tiers
// @Produce      json
// @Param        scope  query  string  false  "internal or external"
// @Success      200  {object}  DataResponse
// @Router       /rate_tiers [get]
func (s *Server) ListRateTiers(c *gin.Context) {
	resp, err := s.rateTierSvc.List(c.Request.Context(), ratetierdomain.ListRequest{
		Scope: strings.ToLower(strings.TrimSpace(c.Query("scope"))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Rate Tier
// @Tags         rate_tiers
// @Produce      json
// @Param        id  path  string  true  "Rate Tier ID"
// @Success      200  {object}  DataResponse
// @Router       /rate_tiers/{id} [get]
func (s *Server) GetRateTier(c *gin.Context) {
	resp, err := s.rateTierSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Rate Tier
// @Tags         rate_tiers
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Rate Tier ID"
// @Param        request body updateRateTierRequest true "Update Rate Tier Request"
// @Success      200  {object}  DataResponse
// @Router       /rate_tiers/{id} [put]
func (s *Server) UpdateRateTier(c *gin.Context) {
	var req updateRateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateTierSvc.Update(c.Request.Context(), ratetierdomain.UpdateRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		VehicleClass: req.VehicleClass,
		MinRatio:     req.MinRatio,
		MaxRatio:     req.MaxRatio,
		ClearMax:     req.ClearMax,
		Rate:         req.Rate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Rate Tier
// @Tags         rate_tiers
// @Produce      json
// @Param        id  path  string  true  "Rate Tier ID"
// @Success      200  {object}  DataResponse
// @Router       /rate_tiers/{id} [delete]
func (s *Server) DeleteRateTier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.rateTierSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"id": id, "deleted": true})
}
