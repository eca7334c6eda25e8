package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"
)

// Audit event types recorded per product mutation.
const (
	EventCreate = "CREATE"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrEmptyName        = errors.New("product name is empty")
	ErrNonPositivePrice = errors.New("price must be greater than 0")
)

// CatalogService implements product operations. Every mutation is recorded in
// the audit trail; audit writes are best-effort and never roll back the
// mutation itself, but failures are logged so a dying trail is observable.
type CatalogService struct {
	products repository.ProductRepo
	events   repository.EventRepo
	log      *logger.Logger
}

func NewCatalogService(products repository.ProductRepo, events repository.EventRepo, log *logger.Logger) *CatalogService {
	return &CatalogService{products: products, events: events, log: log}
}

func validateProduct(p ProductParams) error {
	if strings.TrimSpace(p.ProductName) == "" {
		return ErrEmptyName
	}
	if p.Price <= 0 {
		return ErrNonPositivePrice
	}
	return nil
}

// Add creates a new product and records a CREATE event.
func (s *CatalogService) Add(ctx context.Context, p ProductParams) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}
	created, err := s.products.Create(ctx, p.ProductName, p.Price)
	if err != nil {
		return models.Product{}, err
	}
	s.record(ctx, EventCreate, fmt.Sprintf("product %q created", created.ProductName), created)
	return created, nil
}

// Get returns a single active product.
func (s *CatalogService) Get(ctx context.Context, id int) (models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if p == nil {
		return models.Product{}, ErrProductNotFound
	}
	return *p, nil
}

// List returns all active products.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// Update replaces name and price of an active product and records an UPDATE
// event.
func (s *CatalogService) Update(ctx context.Context, id int, p ProductParams) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}
	updated, err := s.products.Update(ctx, id, p.ProductName, p.Price)
	if err != nil {
		return models.Product{}, err
	}
	if updated == nil {
		return models.Product{}, ErrProductNotFound
	}
	s.record(ctx, EventUpdate, fmt.Sprintf("product %q updated", updated.ProductName), *updated)
	return *updated, nil
}

// Delete soft-deletes a product and records a DELETE event.
func (s *CatalogService) Delete(ctx context.Context, id int) error {
	deleted, err := s.products.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	s.record(ctx, EventDelete, fmt.Sprintf("product %d deleted", id), map[string]int{"id": id})
	return nil
}

// record appends an audit event; best-effort, the mutation already happened.
func (s *CatalogService) record(ctx context.Context, typ, description string, meta any) {
	err := s.events.Append(ctx, models.CatalogEvent{
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
	if err != nil && s.log != nil {
		s.log.Errorw("audit_append_failed", "err", err, "type", typ)
	}
}
