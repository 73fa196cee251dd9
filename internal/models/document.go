package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Document struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name" validate:"required"`
	Type             string             `bson:"type" json:"type" validate:"required"`
	ExpirationDate   time.Time          `bson:"expiration_date" json:"expirationDate"`
	IssueDate        time.Time          `bson:"issue_date" json:"issueDate"`
	RenewalFrequency string             `bson:"renewal_frequency" json:"renewalFrequency"`
	LastRenewalDate  *time.Time         `bson:"last_renewal_date,omitempty" json:"lastRenewalDate,omitempty"`
	FileName         string             `bson:"file_name,omitempty" json:"fileName,omitempty"`
	FileURL          string             `bson:"file_url,omitempty" json:"fileUrl,omitempty"`
	Observations     string             `bson:"observations,omitempty" json:"observations,omitempty"`
}

// Document types. Miscellaneous documents are tracked for reference only and
// never drive a vehicle's status.
const (
	DocumentTypeCirculationPermit    = "circulation_permit"
	DocumentTypeTechnicalInspection  = "technical_inspection"
	DocumentTypeEmissionsCertificate = "emissions_certificate"
	DocumentTypeMandatoryInsurance   = "mandatory_insurance"
	DocumentTypeGeneralMaintenance   = "general_maintenance"
	DocumentTypeMiscellaneous        = "miscellaneous"
)

var DocumentTypeLabels = map[string]string{
	DocumentTypeCirculationPermit:    "Circulation Permit",
	DocumentTypeTechnicalInspection:  "Technical Inspection Certificate",
	DocumentTypeEmissionsCertificate: "Emissions Certificate",
	DocumentTypeMandatoryInsurance:   "Mandatory Insurance",
	DocumentTypeGeneralMaintenance:   "General Maintenance",
	DocumentTypeMiscellaneous:        "Miscellaneous",
}
