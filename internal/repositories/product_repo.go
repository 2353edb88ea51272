package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"
)

// Sentinel errors shared by all ProductRepository implementations. Handlers
// map these to HTTP statuses with errors.Is.
var (
	// ErrProductNotFound means no document matched the given id.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProductID means the id is not a structurally valid ObjectID
	// hex string. This is independent of whether such a document exists.
	ErrInvalidProductID = errors.New("invalid product id")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update merges the given fields into the matching document and returns
	// the number of documents actually modified. A zero count covers both
	// "no such document" and "document already had these values".
	Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string) error
}
