package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryLog is a single append-only audit entry. Old and new values are
// always stored as strings; entries are never mutated or deleted.
type HistoryLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID   string             `bson:"vehicle_id,omitempty" json:"vehicleId,omitempty"`
	VehicleName string             `bson:"vehicle_name,omitempty" json:"vehicleName,omitempty"`
	Action      string             `bson:"action" json:"action"`
	Field       string             `bson:"field,omitempty" json:"field,omitempty"`
	OldValue    string             `bson:"old_value,omitempty" json:"oldValue,omitempty"`
	NewValue    string             `bson:"new_value,omitempty" json:"newValue,omitempty"`
	Details     string             `bson:"details" json:"details"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	User        string             `bson:"user" json:"user"`
}

// History actions.
const (
	ActionVehicleCreated  = "vehicle_created"
	ActionVehicleUpdated  = "vehicle_updated"
	ActionVehicleDeleted  = "vehicle_deleted"
	ActionDocumentAdded   = "document_added"
	ActionDocumentRenewed = "document_renewed"
	ActionDocumentUpdated = "document_updated"
	ActionDocumentDeleted = "document_deleted"
)

var HistoryActionLabels = map[string]string{
	ActionVehicleCreated:  "Vehicle registered",
	ActionVehicleUpdated:  "Vehicle information updated",
	ActionVehicleDeleted:  "Vehicle removed",
	ActionDocumentAdded:   "Document added",
	ActionDocumentRenewed: "Document renewed",
	ActionDocumentUpdated: "Document updated",
	ActionDocumentDeleted: "Document removed",
}
