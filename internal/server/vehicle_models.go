package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
)

type createVehicleModelRequest struct {
	Name               string   `json:"name"`
	IsHighDisplacement *bool    `json:"is_high_displacement,omitempty"`
	ListPrice          *float64 `json:"list_price,omitempty"`
}

type updateVehicleModelRequest struct {
	Name               *string  `json:"name,omitempty"`
	IsHighDisplacement *bool    `json:"is_high_displacement,omitempty"`
	ListPrice          *float64 `json:"list_price,omitempty"`
	Status             *string  `json:"status,omitempty"`
}

// @Summary      Create Vehicle Model
// @Description  Register a model. The high displacement flag defaults to the name marker.
// @Tags         vehicle_models
// @Accept       json
// @Produce      json
// @Param        request body createVehicleModelRequest true "Create Vehicle Model Request"
// @Success      200  {object}  DataResponse
// @Router       /vehicle_models [post]
func (s *Server) CreateVehicleModel(c *gin.Context) {
	var req createVehicleModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.modelSvc.Create(c.Request.Context(), vehiclemodeldomain.CreateRequest{
		Name:               strings.TrimSpace(req.Name),
		IsHighDisplacement: req.IsHighDisplacement,
		ListPrice:          req.ListPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Vehicle Models
// @Tags         vehicle_models
// @Produce      json
// @Param        status  query  string  false  "active or inactive"
// @Success      200  {object}  DataResponse
// @Router       /vehicle_models [get]
func (s *Server) ListVehicleModels(c *gin.Context) {
	resp, err := s.modelSvc.List(c.Request.Context(), vehiclemodeldomain.ListRequest{
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Vehicle Model
// @Tags         vehicle_models
// @Produce      json
// @Param        id  path  string  true  "Vehicle Model ID"
// @Success      200  {object}  DataResponse
// @Router       /vehicle_models/{id} [get]
func (s *Server) GetVehicleModel(c *gin.Context) {
	resp, err := s.modelSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Vehicle Model
// @Tags         vehicle_models
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Vehicle Model ID"
// @Param        request body updateVehicleModelRequest true "Update Vehicle Model Request"
// @Success      200  {object}  DataResponse
// @Router       /vehicle_models/{id} [put]
func (s *Server) UpdateVehicleModel(c *gin.Context) {
	var req updateVehicleModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.modelSvc.Update(c.Request.Context(), vehiclemodeldomain.UpdateRequest{
		ID:                 strings.TrimSpace(c.Param("id")),
		Name:               req.Name,
		IsHighDisplacement: req.IsHighDisplacement,
		ListPrice:          req.ListPrice,
		Status:             req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Vehicle Model
// @Tags         vehicle_models
// @Produce      json
// @Param        id  path  string  true  "Vehicle Model ID"
// @Success      200  {object}  DataResponse
// @Router       /vehicle_models/{id} [delete]
func (s *Server) DeleteVehicleModel(c *gin.Context) {
	resp, err := s.modelSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
