package service

import (
	"context"
	"time"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (string, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Catalog exposes product CRUD operations.
type Catalog interface {
	Add(ctx context.Context, p ProductParams) (models.Product, error)
	Get(ctx context.Context, id int) (models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id int, p ProductParams) (models.Product, error)
	Delete(ctx context.Context, id int) error
}

// Audit exposes the append-only catalog history with filtering access, plus
// the background retention loop. Stop Run via context cancellation in main().
type Audit interface {
	List(ctx context.Context, f EventFilter) ([]models.CatalogEvent, error)
	Run(ctx context.Context, tick time.Duration)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Catalog
	Audit
	Authorization
}

// Config carries the startup knobs the services need beyond their repos.
type Config struct {
	JWTSigningKey  string
	AuditRetention time.Duration
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config, log *logger.Logger) *Service {
	return &Service{
		Catalog:       NewCatalogService(repos.Products, repos.Events, log),
		Audit:         NewAuditService(repos.Events, cfg.AuditRetention),
		Authorization: NewAuthService(repos.Auth, cfg.JWTSigningKey),
	}
}
