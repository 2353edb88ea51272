package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// EventPublisher publishes catalog mutation events to a message broker.
// *rabbitmq.Client satisfies it; tests substitute a mock.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher // may be nil; events are then skipped
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stamps the creation timestamps and inserts the product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	s.publishEvent("product.created", product.ID.Hex())
	return nil
}

// UpdateProduct merges the given fields into the stored document as-is. The
// caller decides what a zero modified count means for its response.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	modified, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	if modified > 0 {
		s.publishEvent("product.updated", id)
	}
	return modified, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent("product.deleted", id)
	return nil
}

// publishEvent emits a catalog mutation event. Failures are logged, never
// surfaced: the store write already succeeded and the response must say so.
func (s *ProductService) publishEvent(action, productID string) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"action":    action,
		"productId": productID,
		"at":        time.Now().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", action, err)
		return
	}

	if err := s.publisher.Publish("", "product_events", body); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", action, productID, err)
	}
}
