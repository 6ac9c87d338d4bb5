package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/railzwaylabs/commissions/internal/report/domain"
)

const (
	checksumHeader = "X-Export-Checksum"
	countHeader    = "X-Export-Count"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondWithWarnings(c *gin.Context, data any, warnings []string) {
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "warnings": warnings})
}

func respondDocument(c *gin.Context, doc *reportdomain.Document) {
	c.Header(checksumHeader, doc.Checksum)
	c.Header(countHeader, strconv.Itoa(doc.Count))
	c.Header("Content-Disposition", "attachment; filename=\""+doc.FileName+"\"")
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
