package services

import (
	"context"
	"time"

	"fleet-docs-backend/internal/audit"
	"fleet-docs-backend/internal/models"
	"fleet-docs-backend/internal/status"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateVehicleRequest struct {
	Type         string `json:"type" validate:"required,min=1,max=50"`
	Project      string `json:"project" validate:"required,min=1,max=100"`
	Year         int    `json:"year" validate:"required,min=1900,max=2100"`
	Model        string `json:"model" validate:"required,min=1,max=100"`
	Brand        string `json:"brand" validate:"required,min=1,max=100"`
	LicensePlate string `json:"licensePlate" validate:"required,min=1,max=20"`
}

// UpdateVehicleRequest carries a partial update. Pointer fields distinguish
// "not sent" from zero values, so only fields present in the request are
// applied and diffed.
type UpdateVehicleRequest struct {
	Type         *string `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Project      *string `json:"project,omitempty" validate:"omitempty,min=1,max=100"`
	Year         *int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Model        *string `json:"model,omitempty" validate:"omitempty,min=1,max=100"`
	Brand        *string `json:"brand,omitempty" validate:"omitempty,min=1,max=100"`
	LicensePlate *string `json:"licensePlate,omitempty" validate:"omitempty,min=1,max=20"`
}

// VehicleMutation is the result of a vehicle write: the affected vehicle and
// the history entries that single mutation produced.
type VehicleMutation struct {
	Vehicle     *models.Vehicle     `json:"vehicle"`
	HistoryLogs []models.HistoryLog `json:"historyLogs"`
}

// VehicleView is a vehicle decorated with its urgency, computed from the
// current clock at query time.
type VehicleView struct {
	*models.Vehicle
	Status              status.Status `json:"status"`
	DaysUntilExpiration *int          `json:"daysUntilExpiration,omitempty"`
}

// ListVehicles returns all vehicles ordered most urgent first: ascending by
// the earliest trackable expiration date, vehicles without one last.
func (s *FleetService) ListVehicles(ctx context.Context) ([]VehicleView, error) {
	vehicles, err := s.loadVehicles(ctx)
	if err != nil {
		return nil, err
	}
	status.SortVehicles(vehicles)

	now := time.Now()
	views := make([]VehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		views = append(views, newVehicleView(v, now))
	}
	return views, nil
}

// GetVehicle returns a single vehicle with its computed status.
func (s *FleetService) GetVehicle(ctx context.Context, id string) (*VehicleView, error) {
	vehicle, err := s.store.FindVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	view := newVehicleView(vehicle, time.Now())
	return &view, nil
}

// CreateVehicle registers a new vehicle and records its creation. A duplicate
// license plate fails with repository.ErrDuplicatePlate and leaves no trace.
func (s *FleetService) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*VehicleMutation, error) {
	now := time.Now()
	vehicle := &models.Vehicle{
		ID:           primitive.NewObjectID(),
		Type:         req.Type,
		Project:      req.Project,
		Year:         req.Year,
		Model:        req.Model,
		Brand:        req.Brand,
		LicensePlate: req.LicensePlate,
		Documents:    []models.Document{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	logs := audit.VehicleCreated(vehicle, now)

	if err := s.store.CreateVehicle(ctx, vehicle, logs); err != nil {
		return nil, err
	}
	s.invalidateVehicleList()

	return &VehicleMutation{Vehicle: vehicle, HistoryLogs: logs}, nil
}

// UpdateVehicle applies a partial update and records one history entry per
// field whose stringified value actually changed. An update that changes
// nothing produces no entries.
func (s *FleetService) UpdateVehicle(ctx context.Context, id string, req *UpdateVehicleRequest) (*VehicleMutation, error) {
	vehicle, err := s.store.FindVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	var fields []audit.VehicleField
	if req.Type != nil {
		fields = append(fields, audit.VehicleField{Name: "type", Old: vehicle.Type, New: *req.Type})
		vehicle.Type = *req.Type
	}
	if req.Project != nil {
		fields = append(fields, audit.VehicleField{Name: "project", Old: vehicle.Project, New: *req.Project})
		vehicle.Project = *req.Project
	}
	if req.Year != nil {
		fields = append(fields, audit.VehicleField{Name: "year", Old: audit.Stringify(vehicle.Year), New: audit.Stringify(*req.Year)})
		vehicle.Year = *req.Year
	}
	if req.Model != nil {
		fields = append(fields, audit.VehicleField{Name: "model", Old: vehicle.Model, New: *req.Model})
		vehicle.Model = *req.Model
	}
	if req.Brand != nil {
		fields = append(fields, audit.VehicleField{Name: "brand", Old: vehicle.Brand, New: *req.Brand})
		vehicle.Brand = *req.Brand
	}
	if req.LicensePlate != nil {
		fields = append(fields, audit.VehicleField{Name: "licensePlate", Old: vehicle.LicensePlate, New: *req.LicensePlate})
		vehicle.LicensePlate = *req.LicensePlate
	}

	now := time.Now()
	vehicle.UpdatedAt = now
	logs := audit.VehicleUpdated(vehicle, fields, now)

	if err := s.store.UpdateVehicle(ctx, vehicle, logs); err != nil {
		return nil, err
	}
	s.invalidateVehicleList()

	return &VehicleMutation{Vehicle: vehicle, HistoryLogs: logs}, nil
}

// DeleteVehicle removes a vehicle and all of its documents, recording exactly
// one entry for the vehicle; the cascaded documents do not log individually.
func (s *FleetService) DeleteVehicle(ctx context.Context, id string) (*VehicleMutation, error) {
	vehicle, err := s.store.FindVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	logs := audit.VehicleDeleted(vehicle, time.Now())
	if err := s.store.DeleteVehicle(ctx, id, logs); err != nil {
		return nil, err
	}
	s.invalidateVehicleList()

	return &VehicleMutation{Vehicle: vehicle, HistoryLogs: logs}, nil
}

// loadVehicles reads the vehicle list through the cache when one is
// configured, falling back to the store on miss or cache failure.
func (s *FleetService) loadVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	if s.cacheManager != nil {
		cached, err := s.cacheManager.GetVehicleList(vehicleListCacheKey)
		if err != nil {
			s.log.WithError(err).Warn("vehicle list cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil {
		if err := s.cacheManager.SetVehicleList(vehicleListCacheKey, vehicles, s.cacheTTL); err != nil {
			s.log.WithError(err).Warn("vehicle list cache write failed")
		}
	}
	return vehicles, nil
}

func newVehicleView(v *models.Vehicle, now time.Time) VehicleView {
	view := VehicleView{
		Vehicle: v,
		Status:  status.ForVehicle(v, now),
	}
	if earliest := status.EarliestExpiring(v.Documents); earliest != nil {
		days := status.DaysUntil(earliest.ExpirationDate, now)
		view.DaysUntilExpiration = &days
	}
	return view
}
