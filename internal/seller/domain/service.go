package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Seller, error)
	List(ctx context.Context, req ListRequest) ([]Seller, error)
	Get(ctx context.Context, id string) (*Seller, error)
	Update(ctx context.Context, req UpdateRequest) (*Seller, error)
	Delete(ctx context.Context, id string) (*Seller, error)
	FindByName(ctx context.Context, name string) (*Seller, error)

	// Ensure returns the seller with the given name, creating an active
	// external seller when none exists.
	Ensure(ctx context.Context, name, city string) (*Seller, error)
	// Sync registers every seller seen in a sales upload and refreshes
	// their city.
	Sync(ctx context.Context, cities map[string]string) (SyncResult, error)

	WithTx(tx *gorm.DB) Service
}

type ListRequest struct {
	// Status filters by status; empty lists every seller.
	Status string
}

type CreateRequest struct {
	Name       string `json:"name"`
	City       string `json:"city"`
	IsInternal bool   `json:"is_internal"`
}

type UpdateRequest struct {
	ID         string  `json:"-"`
	Name       *string `json:"name,omitempty"`
	City       *string `json:"city,omitempty"`
	IsInternal *bool   `json:"is_internal,omitempty"`
	Status     *string `json:"status,omitempty"`
}

type SyncResult struct {
	Created  []string `json:"created"`
	Existing []string `json:"existing"`
	Updated  []string `json:"updated"`
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrNotFound      = errors.New("seller_not_found")
	ErrAlreadyExists = errors.New("seller_already_exists")
)
