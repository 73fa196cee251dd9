package services

import (
	"context"

	"fleet-docs-backend/internal/models"
)

const (
	defaultHistoryLimit = 200
	maxHistoryLimit     = 500
)

// ListHistory returns audit entries newest first. A non-positive limit falls
// back to the default; the limit is capped at maxHistoryLimit.
func (s *FleetService) ListHistory(ctx context.Context, limit int) ([]*models.HistoryLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.store.ListHistory(ctx, limit)
}
