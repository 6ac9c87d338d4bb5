package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
)

type createSellerRequest struct {
	Name       string `json:"name"`
	City       string `json:"city"`
	IsInternal bool   `json:"is_internal"`
}

type updateSellerRequest struct {
	Name       *string `json:"name,omitempty"`
	City       *string `json:"city,omitempty"`
	IsInternal *bool   `json:"is_internal,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// @Summary      Create Seller
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        request body createSellerRequest true "Create Seller Request"
// @Success      200  {object}  DataResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /sellers [post]
func (s *Server) CreateSeller(c *gin.Context) {
	var req createSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.sellerSvc.Create(c.Request.Context(), sellerdomain.CreateRequest{
		Name:       strings.TrimSpace(req.Name),
		City:       strings.TrimSpace(req.City),
		IsInternal: req.IsInternal,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Sellers
// @Tags         sellers
// @Produce      json
// @Param        status  query  string  false  "active or inactive"
// @Success      200  {object}  DataResponse
// @Router       /sellers [get]
func (s *Server) ListSellers(c *gin.Context) {
	resp, err := s.sellerSvc.List(c.Request.Context(), sellerdomain.ListRequest{
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Seller
// @Tags         sellers
// @Produce      json
// @Param        id  path  string  true  "Seller ID"
// @Success      200  {object}  DataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /sellers/{id} [get]
func (s *Server) GetSeller(c *gin.Context) {
	resp, err := s.sellerSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Seller
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Seller ID"
// @Param        request body updateSellerRequest true "Update Seller Request"
// @Success      200  {object}  DataResponse
// @Router       /sellers/{id} [put]
func (s *Server) UpdateSeller(c *gin.Context) {
	var req updateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.sellerSvc.Update(c.Request.Context(), sellerdomain.UpdateRequest{
		ID:         strings.TrimSpace(c.Param("id")),
		Name:       req.Name,
		City:       req.City,
		IsInternal: req.IsInternal,
		Status:     req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Seller
// @Tags         sellers
// @Produce      json
// @Param        id  path  string  true  "Seller ID"
// @Success      200  {object}  DataResponse
// @Router       /sellers/{id} [delete]
func (s *Server) DeleteSeller(c *gin.Context) {
	resp, err := s.sellerSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
