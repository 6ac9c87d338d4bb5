package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
)

const (
	defaultUploadListLimit = 50
	// multipartSlack leaves room for boundaries and part headers around the
	// file itself. The ledger service enforces the exact file limit.
	multipartSlack = 64 << 10
)

type ingestFunc func(c *gin.Context, req ledgerdomain.IngestRequest) (*ledgerdomain.IngestResult, error)

// @Summary      Upload Sales Ledger
// @Description  Replace the sales ledger with the rows of a CSV export
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Sales CSV"
// @Success      200  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Router       /uploads/sales [post]
func (s *Server) UploadSales(c *gin.Context) {
	s.upload(c, func(c *gin.Context, req ledgerdomain.IngestRequest) (*ledgerdomain.IngestResult, error) {
		return s.ledgerSvc.IngestSales(c.Request.Context(), req)
	})
}

// @Summary      Upload Proposal Ledger
// @Description  Replace the proposal ledger with the rows of a CSV export
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Proposals CSV"
// @Success      200  {object}  DataResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Router       /uploads/proposals [post]
func (s *Server) UploadProposals(c *gin.Context) {
	s.upload(c, func(c *gin.Context, req ledgerdomain.IngestRequest) (*ledgerdomain.IngestResult, error) {
		return s.ledgerSvc.IngestProposals(c.Request.Context(), req)
	})
}

func (s *Server) upload(c *gin.Context, ingest ingestFunc) {
	if limit := s.cfg.Ingest.MaxUploadBytes; limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartSlack)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			AbortWithError(c, ledgerdomain.ErrFileTooLarge)
			return
		}
		AbortWithError(c, newValidationError("file", "file_required", "multipart field file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer file.Close()

	resp, err := ingest(c, ledgerdomain.IngestRequest{
		FileName: header.Filename,
		Content:  io.Reader(file),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// @Summary      List Uploads
// @Description  List the most recent ledger uploads
// @Tags         uploads
// @Produce      json
// @Param        limit  query  int  false  "Limit"
// @Success      200  {object}  DataResponse
// @Router       /uploads [get]
func (s *Server) ListUploads(c *gin.Context) {
	limit := defaultUploadListLimit
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be a positive integer"))
			return
		}
		limit = v
	}

	uploads, err := s.ledgerSvc.ListUploads(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, uploads)
}

// @Summary      Clear Ledgers
// @Description  Empty both the sales and the proposal ledger
// @Tags         uploads
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /ledgers/clear [post]
func (s *Server) ClearLedgers(c *gin.Context) {
	if err := s.ledgerSvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"cleared": true})
}
