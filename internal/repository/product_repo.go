package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/models"
)

type ProductSQLite struct {
	db *sql.DB
}

func NewProductSQLite(db *sql.DB) *ProductSQLite { return &ProductSQLite{db: db} }

var _ ProductRepo = (*ProductSQLite)(nil)

const (
	insertProductSQL     = `INSERT INTO products (product_name, price, active) VALUES (?, ?, 1)`
	selectProductByIDSQL = `SELECT id, product_name, price, active FROM products WHERE id = ? AND active = 1`
	selectProductsSQL    = `SELECT id, product_name, price, active FROM products WHERE active = 1 ORDER BY id ASC`
	updateProductSQL     = `UPDATE products SET product_name = ?, price = ? WHERE id = ? AND active = 1`
	softDeleteProductSQL = `UPDATE products SET active = 0 WHERE id = ? AND active = 1`
)

// Create inserts a new active product and returns it with its assigned ID.
func (r *ProductSQLite) Create(ctx context.Context, name string, price float64) (models.Product, error) {
	res, err := r.db.ExecContext(ctx, insertProductSQL, name, price)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Product{}, fmt.Errorf("get last insert id for product %q: %w", name, err)
	}
	return models.Product{ID: int(lastID), ProductName: name, Price: price, Active: true}, nil
}

// GetByID fetches an active product. Returns (nil, nil) if not found or deleted.
func (r *ProductSQLite) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx, selectProductByIDSQL, id).
		Scan(&p.ID, &p.ProductName, &p.Price, &p.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product %d: %w", id, err)
	}
	return &p, nil
}

// List returns all active products ordered by ID.
func (r *ProductSQLite) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	out := make([]models.Product, 0, 16)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Price, &p.Active); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return out, nil
}

// Update replaces name and price of an active product and returns the updated
// row. Returns (nil, nil) if no active product has the given ID.
func (r *ProductSQLite) Update(ctx context.Context, id int, name string, price float64) (*models.Product, error) {
	res, err := r.db.ExecContext(ctx, updateProductSQL, name, price, id)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for product %d: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}
	return &models.Product{ID: id, ProductName: name, Price: price, Active: true}, nil
}

// SoftDelete marks a product inactive. Returns false if no active product
// had the given ID.
func (r *ProductSQLite) SoftDelete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, softDeleteProductSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for product %d: %w", id, err)
	}
	return affected > 0, nil
}
