package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the Mongo implementation's semantics: ids are ObjectID hex
// strings, listing is newest-first, and updates report a modified count of
// zero when the document is absent or the fields already match.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products, most recently created first.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		if !productList[i].CreatedAt.Equal(productList[j].CreatedAt) {
			return productList[i].CreatedAt.After(productList[j].CreatedAt)
		}
		// ObjectIDs embed their creation time, so the hex order breaks ties.
		return productList[i].ID.Hex() > productList[j].ID.Hex()
	})
	return productList, nil
}

// GetByID returns a product by its ObjectID hex string.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("parse product id %q: %w", id, ErrInvalidProductID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product, assigning a fresh ObjectID when unset.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	r.products[product.ID.Hex()] = *product
	return nil
}

// Update merges the declared product fields out of the given map into the
// stored document and reports how many documents actually changed. Like the
// Mongo $set path, an absent document and a no-op update both yield zero.
func (r *MockProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, ErrInvalidProductID
	}
	if len(fields) == 0 {
		// Mongo rejects an empty $set document outright.
		return 0, fmt.Errorf("failed to update product %s: empty update document", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return 0, nil
	}

	modified := false
	for key, value := range fields {
		switch key {
		case "title":
			if s, ok := value.(string); ok && s != product.Title {
				product.Title = s
				modified = true
			}
		case "price":
			if p, ok := asFloat(value); ok && p != product.Price {
				product.Price = p
				modified = true
			}
		case "imageUrl":
			if s, ok := value.(string); ok && s != product.ImageURL {
				product.ImageURL = s
				modified = true
			}
		case "amazonUrl":
			if s, ok := value.(string); ok && s != product.AmazonURL {
				product.AmazonURL = s
				modified = true
			}
		}
	}

	if !modified {
		return 0, nil
	}
	r.products[id] = product
	return 1, nil
}

// Delete removes a product by its ObjectID hex string.
func (r *MockProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidProductID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// asFloat normalizes the numeric types a decoded JSON body can carry.
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
