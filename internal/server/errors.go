package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
	reportdomain "github.com/railzwaylabs/commissions/internal/report/domain"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
)

const (
	errorTypeValidation = "validation_error"
	errorTypeNotFound   = "not_found"
	errorTypeConflict   = "conflict"
	errorTypeInternal   = "internal_error"
	errorTypeTooLarge   = "payload_too_large"
)

// APIError is the body of every failed response.
type APIError struct {
	Status  int    `json:"-"`
	Type    string `json:"type"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Code
}

type ErrorResponse struct {
	Error *APIError `json:"error"`
}

var (
	ErrInvalidRequest = &APIError{Status: http.StatusBadRequest, Type: errorTypeValidation, Code: "invalid_request", Message: "invalid request"}
	ErrNotFound       = &APIError{Status: http.StatusNotFound, Type: errorTypeNotFound, Code: "not_found", Message: "resource not found"}
	ErrInternal       = &APIError{Status: http.StatusInternalServerError, Type: errorTypeInternal, Code: "internal_error", Message: "internal server error"}
)

func invalidRequestError() *APIError {
	return ErrInvalidRequest
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Type: errorTypeValidation, Code: code, Field: field, Message: message}
}

var validationErrors = map[error]string{
	sellerdomain.ErrInvalidID:                  "id",
	sellerdomain.ErrInvalidName:                "name",
	sellerdomain.ErrInvalidStatus:              "status",
	vehiclemodeldomain.ErrInvalidID:            "id",
	vehiclemodeldomain.ErrInvalidName:          "name",
	vehiclemodeldomain.ErrInvalidListPrice:     "list_price",
	vehiclemodeldomain.ErrInvalidStatus:        "status",
	paymentmethoddomain.ErrInvalidID:           "id",
	paymentmethoddomain.ErrInvalidName:         "name",
	paymentmethoddomain.ErrInvalidStatus:       "status",
	paymentmethoddomain.ErrInvalidInterestRate: "monthly_interest_rate",
	paymentmethoddomain.ErrInvalidCoefficients: "coefficients",
	ratetierdomain.ErrInvalidID:                "id",
	ratetierdomain.ErrInvalidScope:             "scope",
	ratetierdomain.ErrInvalidVehicleClass:      "vehicle_class",
	ratetierdomain.ErrInvalidMinRatio:          "min_ratio",
	ratetierdomain.ErrInvalidMaxRatio:          "max_ratio",
	ratetierdomain.ErrInvalidRate:              "rate",
	ledgerdomain.ErrEmptyFile:                  "file",
	ledgerdomain.ErrMalformedFile:              "file",
	ledgerdomain.ErrMissingColumn:              "file",
	commissiondomain.ErrInvalidTarget:          "target_value",
	commissiondomain.ErrInvalidSaleValue:       "sale_value",
	commissiondomain.ErrInvalidRatio:           "achievement_ratio",
	commissiondomain.ErrInvalidSellerName:      "name",
	commissiondomain.ErrNothingToProcess:       "",
	commissiondomain.ErrInvalidRunID:           "id",
	reportdomain.ErrUnsupportedFormat:          "format",
}

var notFoundErrors = []error{
	sellerdomain.ErrNotFound,
	vehiclemodeldomain.ErrNotFound,
	paymentmethoddomain.ErrNotFound,
	paymentmethoddomain.ErrTableNotFound,
	ratetierdomain.ErrNotFound,
	commissiondomain.ErrSellerNotFound,
	commissiondomain.ErrRunNotFound,
}

var conflictErrors = []error{
	sellerdomain.ErrAlreadyExists,
	vehiclemodeldomain.ErrAlreadyExists,
	paymentmethoddomain.ErrAlreadyExists,
	paymentmethoddomain.ErrTableAlreadyExists,
	paymentmethoddomain.ErrTableInUse,
}

// toAPIError classifies domain errors. Anything unknown becomes a generic
// internal error so storage details never reach the client.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	for target, field := range validationErrors {
		if errors.Is(err, target) {
			return newValidationError(field, target.Error(), err.Error())
		}
	}
	if errors.Is(err, ledgerdomain.ErrFileTooLarge) {
		return &APIError{Status: http.StatusRequestEntityTooLarge, Type: errorTypeTooLarge, Code: ledgerdomain.ErrFileTooLarge.Error(), Field: "file", Message: err.Error()}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return &APIError{Status: http.StatusNotFound, Type: errorTypeNotFound, Code: target.Error(), Message: err.Error()}
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return &APIError{Status: http.StatusConflict, Type: errorTypeConflict, Code: target.Error(), Message: err.Error()}
		}
	}
	return ErrInternal
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apiErr.Status, ErrorResponse{Error: apiErr})
}
