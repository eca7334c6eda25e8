package models

import "time"

// CatalogEvent is a single audit log entry recorded for a product mutation.
type CatalogEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CREATE | UPDATE | DELETE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
