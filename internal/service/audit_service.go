package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"
)

// AuditService exposes the catalog audit trail and prunes old entries in the
// background.
type AuditService struct {
	eventRepo repository.EventRepo
	retention time.Duration
}

func NewAuditService(eventRepo repository.EventRepo, retention time.Duration) *AuditService {
	return &AuditService{eventRepo: eventRepo, retention: retention}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f EventFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *AuditService) List(ctx context.Context, f EventFilter) ([]models.CatalogEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// Sweep removes events older than the retention window. Returns the number of
// pruned rows.
func (s *AuditService) Sweep(ctx context.Context) (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-s.retention)
	return s.eventRepo.DeleteOlderThan(ctx, cutoff)
}

// Run prunes the audit trail on every tick until the context is cancelled.
// Stop via context cancellation in main() for graceful shutdown.
func (s *AuditService) Run(ctx context.Context, tick time.Duration) {
	if s.retention <= 0 {
		return
	}
	t := time.NewTicker(tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = s.Sweep(ctx)
		}
	}
}
