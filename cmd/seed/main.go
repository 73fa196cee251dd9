// Seed wipes the database and loads a demo fleet with staggered document
// expirations, so every status tier shows up on the dashboard.
package main

import (
	"context"
	"time"

	"fleet-docs-backend/internal/config"
	"fleet-docs-backend/internal/models"
	"fleet-docs-backend/pkg/database"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type seedDocument struct {
	name      string
	docType   string
	expiresIn int // days from now, negative = already expired
	issuedAgo int // days before now
	frequency string
}

type seedVehicle struct {
	vehicleType string
	project     string
	year        int
	model       string
	brand       string
	plate       string
	documents   []seedDocument
}

var fleet = []seedVehicle{
	{"Truck", "North Project", 2022, "Hilux", "Toyota", "ABCD-12", []seedDocument{
		{"Circulation Permit", models.DocumentTypeCirculationPermit, 45, 320, "Annual"},
		{"Technical Inspection", models.DocumentTypeTechnicalInspection, 12, 168, "Semiannual"},
		{"Emissions Certificate", models.DocumentTypeEmissionsCertificate, 12, 168, "Semiannual"},
		{"Mandatory Insurance", models.DocumentTypeMandatoryInsurance, 90, 275, "Annual"},
		{"General Maintenance", models.DocumentTypeGeneralMaintenance, 60, 30, "Variable"},
	}},
	{"Van", "South Project", 2021, "NQR", "Chevrolet", "EFGH-34", []seedDocument{
		{"Circulation Permit", models.DocumentTypeCirculationPermit, 25, 340, "Annual"},
		{"Technical Inspection", models.DocumentTypeTechnicalInspection, 5, 175, "Semiannual"},
		{"Emissions Certificate", models.DocumentTypeEmissionsCertificate, 5, 175, "Semiannual"},
		{"Mandatory Insurance", models.DocumentTypeMandatoryInsurance, 180, 185, "Annual"},
		{"General Maintenance", models.DocumentTypeGeneralMaintenance, -3, 93, "Variable"},
	}},
	{"Van", "Central Project", 2023, "Sprinter", "Mercedes-Benz", "IJKL-56", []seedDocument{
		{"Circulation Permit", models.DocumentTypeCirculationPermit, 120, 245, "Annual"},
		{"Technical Inspection", models.DocumentTypeTechnicalInspection, 75, 105, "Semiannual"},
		{"Emissions Certificate", models.DocumentTypeEmissionsCertificate, 75, 105, "Semiannual"},
		{"Mandatory Insurance", models.DocumentTypeMandatoryInsurance, 200, 165, "Annual"},
		{"General Maintenance", models.DocumentTypeGeneralMaintenance, 40, 50, "Variable"},
	}},
	{"Truck", "North Project", 2020, "Ranger", "Ford", "MNOP-78", []seedDocument{
		{"Circulation Permit", models.DocumentTypeCirculationPermit, -5, 370, "Annual"},
		{"Technical Inspection", models.DocumentTypeTechnicalInspection, 28, 152, "Semiannual"},
		{"Emissions Certificate", models.DocumentTypeEmissionsCertificate, 28, 152, "Semiannual"},
		{"Mandatory Insurance", models.DocumentTypeMandatoryInsurance, 150, 215, "Annual"},
		{"General Maintenance", models.DocumentTypeGeneralMaintenance, 10, 80, "Variable"},
	}},
	{"Car", "South Project", 2019, "FRR", "Isuzu", "QRST-90", []seedDocument{
		{"Circulation Permit", models.DocumentTypeCirculationPermit, 60, 305, "Annual"},
		{"Technical Inspection", models.DocumentTypeTechnicalInspection, 45, 135, "Semiannual"},
		{"Emissions Certificate", models.DocumentTypeEmissionsCertificate, 45, 135, "Semiannual"},
		{"Mandatory Insurance", models.DocumentTypeMandatoryInsurance, 100, 265, "Annual"},
		{"General Maintenance", models.DocumentTypeGeneralMaintenance, 85, 5, "Variable"},
	}},
	{"Truck", "East Project", 2022, "D-Max", "Isuzu", "UVWX-12", []seedDocument{
		{"Circulation Permit", models.DocumentTypeCirculationPermit, 22, 343, "Annual"},
		{"Technical Inspection", models.DocumentTypeTechnicalInspection, 50, 130, "Semiannual"},
		{"Emissions Certificate", models.DocumentTypeEmissionsCertificate, 50, 130, "Semiannual"},
		{"Mandatory Insurance", models.DocumentTypeMandatoryInsurance, 200, 165, "Annual"},
		{"General Maintenance", models.DocumentTypeGeneralMaintenance, 70, 20, "Variable"},
	}},
}

func main() {
	log := logrus.StandardLogger()

	cfg := config.Load()
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Disconnect(db.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vehicles := db.Collection("vehicles")
	history := db.Collection("history_logs")

	// Wipe and recreate.
	if _, err := vehicles.DeleteMany(ctx, bson.M{}); err != nil {
		log.WithError(err).Fatal("failed to clear vehicles")
	}
	if _, err := history.DeleteMany(ctx, bson.M{}); err != nil {
		log.WithError(err).Fatal("failed to clear history")
	}

	now := time.Now()
	for _, sv := range fleet {
		documents := make([]models.Document, 0, len(sv.documents))
		for _, sd := range sv.documents {
			documents = append(documents, models.Document{
				ID:               primitive.NewObjectID(),
				Name:             sd.name,
				Type:             sd.docType,
				ExpirationDate:   now.AddDate(0, 0, sd.expiresIn),
				IssueDate:        now.AddDate(0, 0, -sd.issuedAgo),
				RenewalFrequency: sd.frequency,
			})
		}
		vehicle := models.Vehicle{
			ID:           primitive.NewObjectID(),
			Type:         sv.vehicleType,
			Project:      sv.project,
			Year:         sv.year,
			Model:        sv.model,
			Brand:        sv.brand,
			LicensePlate: sv.plate,
			Documents:    documents,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := vehicles.InsertOne(ctx, vehicle); err != nil {
			log.WithError(err).WithField("plate", sv.plate).Fatal("failed to insert vehicle")
		}
	}

	log.WithField("vehicles", len(fleet)).Info("seed complete")
}
