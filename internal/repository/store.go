// Package repository defines the persistence adapter the fleet service
// depends on, with a MongoDB implementation and an in-memory reference
// implementation.
package repository

import (
	"context"
	"errors"

	"fleet-docs-backend/internal/models"
)

var (
	// ErrNotFound means the referenced vehicle or document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicatePlate means the license plate uniqueness constraint was
	// violated on create or update.
	ErrDuplicatePlate = errors.New("license plate already exists")
)

// Store is the persistence adapter. Every mutation takes the history entries
// it produced and must persist both atomically: either the entity change and
// its audit trail become durable together, or neither does. This is why the
// adapter has no standalone history append.
//
// The store assumes a single logical writer per vehicle; it provides no
// optimistic concurrency control.
type Store interface {
	ListVehicles(ctx context.Context) ([]*models.Vehicle, error)
	FindVehicle(ctx context.Context, id string) (*models.Vehicle, error)

	CreateVehicle(ctx context.Context, v *models.Vehicle, logs []models.HistoryLog) error
	UpdateVehicle(ctx context.Context, v *models.Vehicle, logs []models.HistoryLog) error
	// DeleteVehicle removes the vehicle and, by ownership, all of its
	// documents.
	DeleteVehicle(ctx context.Context, id string, logs []models.HistoryLog) error

	CreateDocument(ctx context.Context, vehicleID string, d *models.Document, logs []models.HistoryLog) (*models.Vehicle, error)
	UpdateDocument(ctx context.Context, vehicleID string, d *models.Document, logs []models.HistoryLog) (*models.Vehicle, error)
	DeleteDocument(ctx context.Context, vehicleID, documentID string, logs []models.HistoryLog) (*models.Vehicle, error)

	// ListHistory returns up to limit entries, newest first.
	ListHistory(ctx context.Context, limit int) ([]*models.HistoryLog, error)
}
