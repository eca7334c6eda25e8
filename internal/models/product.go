package models

// Product is a single catalog entry. Deleted products are kept as rows with
// Active=false and never served again.
type Product struct {
	ID          int     `json:"id"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Active      bool    `json:"-"`
}
