package service

import "time"

// ProductParams carries validated product fields for create/update.
type ProductParams struct {
	ProductName string
	Price       float64
}

// EventFilter supports audit history filtering by time range and type.
type EventFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "CREATE", "UPDATE", "DELETE"
}
