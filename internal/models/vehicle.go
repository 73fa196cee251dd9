package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type         string             `bson:"type" json:"type" validate:"required"`
	Project      string             `bson:"project" json:"project" validate:"required"`
	Year         int                `bson:"year" json:"year" validate:"required"`
	Model        string             `bson:"model" json:"model" validate:"required"`
	Brand        string             `bson:"brand" json:"brand" validate:"required"`
	LicensePlate string             `bson:"license_plate" json:"licensePlate" validate:"required"`
	Documents    []Document         `bson:"documents" json:"documents"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// DisplayName is the denormalized label stored on history entries so they
// remain readable after the vehicle is renamed or deleted.
func (v *Vehicle) DisplayName() string {
	return fmt.Sprintf("%s %s (%s)", v.Brand, v.Model, v.LicensePlate)
}

// FindDocument returns the owned document with the given id, or nil.
func (v *Vehicle) FindDocument(documentID string) *Document {
	for i := range v.Documents {
		if v.Documents[i].ID.Hex() == documentID {
			return &v.Documents[i]
		}
	}
	return nil
}
