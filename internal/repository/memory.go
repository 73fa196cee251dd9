package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"fleet-docs-backend/internal/models"
)

// MemoryStore is the in-memory reference implementation of Store. A single
// mutex makes each mutation plus its history append one atomic unit. Reads
// return deep copies so callers never alias stored state.
type MemoryStore struct {
	mu       sync.RWMutex
	vehicles []*models.Vehicle
	history  []*models.HistoryLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListVehicles(_ context.Context) ([]*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, copyVehicle(v))
	}
	return out, nil
}

func (s *MemoryStore) FindVehicle(_ context.Context, id string) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.findLocked(id)
	if v == nil {
		return nil, ErrNotFound
	}
	return copyVehicle(v), nil
}

func (s *MemoryStore) CreateVehicle(_ context.Context, v *models.Vehicle, logs []models.HistoryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.vehicles {
		if existing.LicensePlate == v.LicensePlate {
			return ErrDuplicatePlate
		}
	}
	s.vehicles = append(s.vehicles, copyVehicle(v))
	s.appendHistoryLocked(logs)
	return nil
}

func (s *MemoryStore) UpdateVehicle(_ context.Context, v *models.Vehicle, logs []models.HistoryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.vehicles {
		if existing.LicensePlate == v.LicensePlate && existing.ID != v.ID {
			return ErrDuplicatePlate
		}
	}
	for i, existing := range s.vehicles {
		if existing.ID == v.ID {
			s.vehicles[i] = copyVehicle(v)
			s.appendHistoryLocked(logs)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteVehicle(_ context.Context, id string, logs []models.HistoryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.vehicles {
		if existing.ID.Hex() == id {
			s.vehicles = append(s.vehicles[:i], s.vehicles[i+1:]...)
			s.appendHistoryLocked(logs)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) CreateDocument(_ context.Context, vehicleID string, d *models.Document, logs []models.HistoryLog) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.findLocked(vehicleID)
	if v == nil {
		return nil, ErrNotFound
	}
	v.Documents = append(v.Documents, *copyDocument(d))
	v.UpdatedAt = time.Now()
	s.appendHistoryLocked(logs)
	return copyVehicle(v), nil
}

func (s *MemoryStore) UpdateDocument(_ context.Context, vehicleID string, d *models.Document, logs []models.HistoryLog) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.findLocked(vehicleID)
	if v == nil {
		return nil, ErrNotFound
	}
	for i := range v.Documents {
		if v.Documents[i].ID == d.ID {
			v.Documents[i] = *copyDocument(d)
			v.UpdatedAt = time.Now()
			s.appendHistoryLocked(logs)
			return copyVehicle(v), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteDocument(_ context.Context, vehicleID, documentID string, logs []models.HistoryLog) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.findLocked(vehicleID)
	if v == nil {
		return nil, ErrNotFound
	}
	for i := range v.Documents {
		if v.Documents[i].ID.Hex() == documentID {
			v.Documents = append(v.Documents[:i], v.Documents[i+1:]...)
			v.UpdatedAt = time.Now()
			s.appendHistoryLocked(logs)
			return copyVehicle(v), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListHistory(_ context.Context, limit int) ([]*models.HistoryLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.HistoryLog, 0, len(s.history))
	for _, entry := range s.history {
		e := *entry
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) findLocked(id string) *models.Vehicle {
	for _, v := range s.vehicles {
		if v.ID.Hex() == id {
			return v
		}
	}
	return nil
}

func (s *MemoryStore) appendHistoryLocked(logs []models.HistoryLog) {
	for i := range logs {
		entry := logs[i]
		s.history = append(s.history, &entry)
	}
}

func copyVehicle(v *models.Vehicle) *models.Vehicle {
	c := *v
	c.Documents = make([]models.Document, len(v.Documents))
	for i := range v.Documents {
		c.Documents[i] = *copyDocument(&v.Documents[i])
	}
	return &c
}

func copyDocument(d *models.Document) *models.Document {
	c := *d
	if d.LastRenewalDate != nil {
		t := *d.LastRenewalDate
		c.LastRenewalDate = &t
	}
	return &c
}
