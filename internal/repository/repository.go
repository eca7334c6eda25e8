package repository

import (
	"context"
	"database/sql"
	"time"

	"storefront/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type ProductRepo interface {
	Create(ctx context.Context, name string, price float64) (models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id int, name string, price float64) (*models.Product, error)
	SoftDelete(ctx context.Context, id int) (bool, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.CatalogEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.CatalogEvent, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type Repository struct {
	Products ProductRepo
	Events   EventRepo
	Auth     Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Products: NewProductSQLite(db),
		Events:   NewEventSQLite(db),
		Auth:     NewUserRepository(db),
	}
}
