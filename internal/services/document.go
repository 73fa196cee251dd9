package services

import (
	"context"
	"sort"
	"time"

	"fleet-docs-backend/internal/audit"
	"fleet-docs-backend/internal/models"
	"fleet-docs-backend/internal/repository"
	"fleet-docs-backend/internal/status"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateDocumentRequest struct {
	Name             string    `json:"name" validate:"required,min=1,max=100"`
	Type             string    `json:"type" validate:"required,oneof=circulation_permit technical_inspection emissions_certificate mandatory_insurance general_maintenance miscellaneous"`
	ExpirationDate   time.Time `json:"expirationDate" validate:"required"`
	IssueDate        time.Time `json:"issueDate" validate:"required"`
	RenewalFrequency string    `json:"renewalFrequency" validate:"required,min=1,max=50"`
	FileName         string    `json:"fileName,omitempty" validate:"omitempty,min=1"`
	FileURL          string    `json:"fileUrl,omitempty" validate:"omitempty,min=1"`
	Observations     string    `json:"observations,omitempty"`
}

// UpdateDocumentRequest carries a partial document update; renewals are
// updates that move the expiration date.
type UpdateDocumentRequest struct {
	Name             *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Type             *string    `json:"type,omitempty" validate:"omitempty,oneof=circulation_permit technical_inspection emissions_certificate mandatory_insurance general_maintenance miscellaneous"`
	ExpirationDate   *time.Time `json:"expirationDate,omitempty"`
	IssueDate        *time.Time `json:"issueDate,omitempty"`
	RenewalFrequency *string    `json:"renewalFrequency,omitempty" validate:"omitempty,min=1,max=50"`
	FileName         *string    `json:"fileName,omitempty" validate:"omitempty,min=1"`
	FileURL          *string    `json:"fileUrl,omitempty" validate:"omitempty,min=1"`
	Observations     *string    `json:"observations,omitempty"`
}

// DocumentMutation is the result of a document write: the refreshed parent
// vehicle, the affected document, and the entries that mutation produced.
type DocumentMutation struct {
	Vehicle     *models.Vehicle     `json:"vehicle"`
	Document    *models.Document    `json:"document"`
	HistoryLogs []models.HistoryLog `json:"historyLogs"`
}

// ExpiringDocument is one row of the needs-attention view.
type ExpiringDocument struct {
	VehicleID           string          `json:"vehicleId"`
	VehicleName         string          `json:"vehicleName"`
	Document            models.Document `json:"document"`
	Status              status.Status   `json:"status"`
	DaysUntilExpiration int             `json:"daysUntilExpiration"`
}

// AddDocument attaches a new document to a vehicle.
func (s *FleetService) AddDocument(ctx context.Context, vehicleID string, req *CreateDocumentRequest) (*DocumentMutation, error) {
	vehicle, err := s.store.FindVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	document := &models.Document{
		ID:               primitive.NewObjectID(),
		Name:             req.Name,
		Type:             req.Type,
		ExpirationDate:   req.ExpirationDate,
		IssueDate:        req.IssueDate,
		RenewalFrequency: req.RenewalFrequency,
		FileName:         req.FileName,
		FileURL:          req.FileURL,
		Observations:     req.Observations,
	}
	logs := audit.DocumentAdded(vehicle, document, now)

	updated, err := s.store.CreateDocument(ctx, vehicleID, document, logs)
	if err != nil {
		return nil, err
	}
	s.invalidateVehicleList()

	return &DocumentMutation{Vehicle: updated, Document: document, HistoryLogs: logs}, nil
}

// UpdateDocument applies a partial update to a document and stamps its last
// renewal date. Moving the expiration date records a renewal; any other
// change records a plain update.
func (s *FleetService) UpdateDocument(ctx context.Context, vehicleID, documentID string, req *UpdateDocumentRequest) (*DocumentMutation, error) {
	vehicle, err := s.store.FindVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	before := vehicle.FindDocument(documentID)
	if before == nil {
		return nil, repository.ErrNotFound
	}

	now := time.Now()
	after := *before
	if req.Name != nil {
		after.Name = *req.Name
	}
	if req.Type != nil {
		after.Type = *req.Type
	}
	if req.ExpirationDate != nil {
		after.ExpirationDate = *req.ExpirationDate
	}
	if req.IssueDate != nil {
		after.IssueDate = *req.IssueDate
	}
	if req.RenewalFrequency != nil {
		after.RenewalFrequency = *req.RenewalFrequency
	}
	if req.FileName != nil {
		after.FileName = *req.FileName
	}
	if req.FileURL != nil {
		after.FileURL = *req.FileURL
	}
	if req.Observations != nil {
		after.Observations = *req.Observations
	}
	after.LastRenewalDate = &now

	logs := audit.DocumentSaved(vehicle, before, &after, now)

	updated, err := s.store.UpdateDocument(ctx, vehicleID, &after, logs)
	if err != nil {
		return nil, err
	}
	s.invalidateVehicleList()

	return &DocumentMutation{Vehicle: updated, Document: &after, HistoryLogs: logs}, nil
}

// DeleteDocument removes a single document from a vehicle.
func (s *FleetService) DeleteDocument(ctx context.Context, vehicleID, documentID string) (*DocumentMutation, error) {
	vehicle, err := s.store.FindVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	document := vehicle.FindDocument(documentID)
	if document == nil {
		return nil, repository.ErrNotFound
	}

	logs := audit.DocumentDeleted(vehicle, document, time.Now())
	updated, err := s.store.DeleteDocument(ctx, vehicleID, documentID, logs)
	if err != nil {
		return nil, err
	}
	s.invalidateVehicleList()

	return &DocumentMutation{Vehicle: updated, Document: document, HistoryLogs: logs}, nil
}

// ExpiringDocuments returns every trackable document currently red or
// yellow, most urgent first. Miscellaneous documents never appear here.
func (s *FleetService) ExpiringDocuments(ctx context.Context) ([]ExpiringDocument, error) {
	vehicles, err := s.loadVehicles(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var expiring []ExpiringDocument
	for _, v := range vehicles {
		for _, doc := range v.Documents {
			if doc.Type == models.DocumentTypeMiscellaneous {
				continue
			}
			st := status.Classify(doc.ExpirationDate, now)
			if st == status.Green {
				continue
			}
			expiring = append(expiring, ExpiringDocument{
				VehicleID:           v.ID.Hex(),
				VehicleName:         v.DisplayName(),
				Document:            doc,
				Status:              st,
				DaysUntilExpiration: status.DaysUntil(doc.ExpirationDate, now),
			})
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].Document.ExpirationDate.Before(expiring[j].Document.ExpirationDate)
	})
	return expiring, nil
}
