package services

import (
	"context"
	"testing"
	"time"

	"fleet-docs-backend/internal/models"
	"fleet-docs-backend/internal/repository"
	"fleet-docs-backend/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func stringPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func newTestService() (*FleetService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	return NewFleetService(store), store
}

func createTestVehicle(t *testing.T, svc *FleetService, plate string) *models.Vehicle {
	t.Helper()
	mutation, err := svc.CreateVehicle(context.Background(), &CreateVehicleRequest{
		Type:         "Truck",
		Project:      "North",
		Year:         2022,
		Model:        "Hilux",
		Brand:        "Toyota",
		LicensePlate: plate,
	})
	require.NoError(t, err)
	return mutation.Vehicle
}

func TestCreateVehicle(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	mutation, err := svc.CreateVehicle(ctx, &CreateVehicleRequest{
		Type:         "Van",
		Project:      "South",
		Year:         2021,
		Model:        "Sprinter",
		Brand:        "Mercedes-Benz",
		LicensePlate: "EFGH-34",
	})
	require.NoError(t, err)
	require.Len(t, mutation.HistoryLogs, 1)
	assert.Equal(t, models.ActionVehicleCreated, mutation.HistoryLogs[0].Action)
	assert.Equal(t, "Mercedes-Benz Sprinter (EFGH-34)", mutation.HistoryLogs[0].VehicleName)
	assert.NotNil(t, mutation.Vehicle.Documents)

	t.Run("duplicate plate fails distinctly with no side effects", func(t *testing.T) {
		_, err := svc.CreateVehicle(ctx, &CreateVehicleRequest{
			Type:         "Truck",
			Project:      "North",
			Year:         2020,
			Model:        "Ranger",
			Brand:        "Ford",
			LicensePlate: "EFGH-34",
		})
		assert.ErrorIs(t, err, repository.ErrDuplicatePlate)

		vehicles, err := store.ListVehicles(ctx)
		require.NoError(t, err)
		assert.Len(t, vehicles, 1)

		history, err := store.ListHistory(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})
}

func TestUpdateVehicle(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	v := createTestVehicle(t, svc, "ABCD-12")

	t.Run("changed field produces one entry", func(t *testing.T) {
		mutation, err := svc.UpdateVehicle(ctx, v.ID.Hex(), &UpdateVehicleRequest{
			Project: stringPtr("South"),
		})
		require.NoError(t, err)
		require.Len(t, mutation.HistoryLogs, 1)

		entry := mutation.HistoryLogs[0]
		assert.Equal(t, models.ActionVehicleUpdated, entry.Action)
		assert.Equal(t, "project", entry.Field)
		assert.Equal(t, "North", entry.OldValue)
		assert.Equal(t, "South", entry.NewValue)
		assert.Equal(t, "South", mutation.Vehicle.Project)
	})

	t.Run("identical payload produces zero entries", func(t *testing.T) {
		before, err := store.ListHistory(ctx, 0)
		require.NoError(t, err)

		mutation, err := svc.UpdateVehicle(ctx, v.ID.Hex(), &UpdateVehicleRequest{
			Project: stringPtr("South"),
			Brand:   stringPtr("Toyota"),
		})
		require.NoError(t, err)
		assert.Empty(t, mutation.HistoryLogs)

		after, err := store.ListHistory(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("multiple fields produce one entry each", func(t *testing.T) {
		mutation, err := svc.UpdateVehicle(ctx, v.ID.Hex(), &UpdateVehicleRequest{
			Year:  intPtr(2023),
			Model: stringPtr("Hilux GR"),
		})
		require.NoError(t, err)
		require.Len(t, mutation.HistoryLogs, 2)
		assert.Equal(t, "year", mutation.HistoryLogs[0].Field)
		assert.Equal(t, "2022", mutation.HistoryLogs[0].OldValue)
		assert.Equal(t, "2023", mutation.HistoryLogs[0].NewValue)
		assert.Equal(t, "model", mutation.HistoryLogs[1].Field)
	})

	t.Run("plate collision", func(t *testing.T) {
		createTestVehicle(t, svc, "ZZZZ-99")
		_, err := svc.UpdateVehicle(ctx, v.ID.Hex(), &UpdateVehicleRequest{
			LicensePlate: stringPtr("ZZZZ-99"),
		})
		assert.ErrorIs(t, err, repository.ErrDuplicatePlate)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		_, err := svc.UpdateVehicle(ctx, "64b2f0000000000000000000", &UpdateVehicleRequest{
			Project: stringPtr("East"),
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func intPtr(i int) *int { return &i }

func TestDeleteVehicle(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	v := createTestVehicle(t, svc, "ABCD-12")

	for i := 0; i < 5; i++ {
		_, err := svc.AddDocument(ctx, v.ID.Hex(), &CreateDocumentRequest{
			Name:             "General Maintenance",
			Type:             models.DocumentTypeGeneralMaintenance,
			ExpirationDate:   time.Now().AddDate(0, 2, 0),
			IssueDate:        time.Now().AddDate(0, -1, 0),
			RenewalFrequency: "Variable",
		})
		require.NoError(t, err)
	}

	historyBefore, err := store.ListHistory(ctx, 0)
	require.NoError(t, err)

	mutation, err := svc.DeleteVehicle(ctx, v.ID.Hex())
	require.NoError(t, err)
	require.Len(t, mutation.HistoryLogs, 1)
	assert.Equal(t, models.ActionVehicleDeleted, mutation.HistoryLogs[0].Action)

	// The cascade removed all documents without logging each one.
	vehicles, err := store.ListVehicles(ctx)
	require.NoError(t, err)
	assert.Empty(t, vehicles)

	historyAfter, err := store.ListHistory(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, historyAfter, len(historyBefore)+1)
}

func TestAddDocument(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	v := createTestVehicle(t, svc, "ABCD-12")

	mutation, err := svc.AddDocument(ctx, v.ID.Hex(), &CreateDocumentRequest{
		Name:             "Technical Inspection",
		Type:             models.DocumentTypeTechnicalInspection,
		ExpirationDate:   time.Now().AddDate(0, 6, 0),
		IssueDate:        time.Now(),
		RenewalFrequency: "Semiannual",
	})
	require.NoError(t, err)
	require.Len(t, mutation.HistoryLogs, 1)
	assert.Equal(t, models.ActionDocumentAdded, mutation.HistoryLogs[0].Action)
	assert.Len(t, mutation.Vehicle.Documents, 1)
	assert.False(t, mutation.Document.ID.IsZero())

	t.Run("unknown vehicle", func(t *testing.T) {
		_, err := svc.AddDocument(ctx, "64b2f0000000000000000000", &CreateDocumentRequest{
			Name:             "Technical Inspection",
			Type:             models.DocumentTypeTechnicalInspection,
			ExpirationDate:   time.Now(),
			IssueDate:        time.Now(),
			RenewalFrequency: "Semiannual",
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestUpdateDocument(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	v := createTestVehicle(t, svc, "ABCD-12")

	oldExp := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	added, err := svc.AddDocument(ctx, v.ID.Hex(), &CreateDocumentRequest{
		Name:             "Mandatory Insurance",
		Type:             models.DocumentTypeMandatoryInsurance,
		ExpirationDate:   oldExp,
		IssueDate:        oldExp.AddDate(-1, 0, 0),
		RenewalFrequency: "Annual",
	})
	require.NoError(t, err)
	docID := added.Document.ID.Hex()

	t.Run("moving the expiration date is a renewal", func(t *testing.T) {
		newExp := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
		mutation, err := svc.UpdateDocument(ctx, v.ID.Hex(), docID, &UpdateDocumentRequest{
			ExpirationDate: timePtr(newExp),
		})
		require.NoError(t, err)
		require.Len(t, mutation.HistoryLogs, 1)

		entry := mutation.HistoryLogs[0]
		assert.Equal(t, models.ActionDocumentRenewed, entry.Action)
		assert.Equal(t, "2025-01-15", entry.OldValue)
		assert.Equal(t, "2025-07-15", entry.NewValue)

		require.NotNil(t, mutation.Document.LastRenewalDate)
		assert.WithinDuration(t, time.Now(), *mutation.Document.LastRenewalDate, 5*time.Second)
	})

	t.Run("same expiration is a plain update", func(t *testing.T) {
		mutation, err := svc.UpdateDocument(ctx, v.ID.Hex(), docID, &UpdateDocumentRequest{
			FileName: stringPtr("insurance-2025.pdf"),
		})
		require.NoError(t, err)
		require.Len(t, mutation.HistoryLogs, 1)

		entry := mutation.HistoryLogs[0]
		assert.Equal(t, models.ActionDocumentUpdated, entry.Action)
		assert.Empty(t, entry.OldValue)
		assert.Empty(t, entry.NewValue)
		assert.Equal(t, "insurance-2025.pdf", mutation.Document.FileName)
	})

	t.Run("document owned by another vehicle", func(t *testing.T) {
		other := createTestVehicle(t, svc, "OTHR-11")
		_, err := svc.UpdateDocument(ctx, other.ID.Hex(), docID, &UpdateDocumentRequest{
			FileName: stringPtr("misfiled.pdf"),
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestDeleteDocument(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	v := createTestVehicle(t, svc, "ABCD-12")

	added, err := svc.AddDocument(ctx, v.ID.Hex(), &CreateDocumentRequest{
		Name:             "Circulation Permit",
		Type:             models.DocumentTypeCirculationPermit,
		ExpirationDate:   time.Now().AddDate(1, 0, 0),
		IssueDate:        time.Now(),
		RenewalFrequency: "Annual",
	})
	require.NoError(t, err)

	mutation, err := svc.DeleteDocument(ctx, v.ID.Hex(), added.Document.ID.Hex())
	require.NoError(t, err)
	require.Len(t, mutation.HistoryLogs, 1)
	assert.Equal(t, models.ActionDocumentDeleted, mutation.HistoryLogs[0].Action)
	assert.Empty(t, mutation.Vehicle.Documents)
}

func TestListVehicles_SortedByUrgency(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	relaxed := createTestVehicle(t, svc, "RLXD-01")
	urgent := createTestVehicle(t, svc, "URGT-02")
	createTestVehicle(t, svc, "BARE-03")

	_, err := svc.AddDocument(ctx, relaxed.ID.Hex(), &CreateDocumentRequest{
		Name:             "Circulation Permit",
		Type:             models.DocumentTypeCirculationPermit,
		ExpirationDate:   time.Now().AddDate(0, 6, 0),
		IssueDate:        time.Now(),
		RenewalFrequency: "Annual",
	})
	require.NoError(t, err)

	_, err = svc.AddDocument(ctx, urgent.ID.Hex(), &CreateDocumentRequest{
		Name:             "Technical Inspection",
		Type:             models.DocumentTypeTechnicalInspection,
		ExpirationDate:   time.Now().AddDate(0, 0, 3),
		IssueDate:        time.Now(),
		RenewalFrequency: "Semiannual",
	})
	require.NoError(t, err)

	views, err := svc.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "URGT-02", views[0].LicensePlate)
	assert.Equal(t, status.Red, views[0].Status)
	assert.Equal(t, "RLXD-01", views[1].LicensePlate)
	assert.Equal(t, status.Green, views[1].Status)

	// No trackable documents: last, green, no countdown.
	assert.Equal(t, "BARE-03", views[2].LicensePlate)
	assert.Equal(t, status.Green, views[2].Status)
	assert.Nil(t, views[2].DaysUntilExpiration)
}

func TestExpiringDocuments(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	v := createTestVehicle(t, svc, "ABCD-12")

	addDoc := func(name, docType string, expiresIn int) {
		t.Helper()
		_, err := svc.AddDocument(ctx, v.ID.Hex(), &CreateDocumentRequest{
			Name:             name,
			Type:             docType,
			ExpirationDate:   time.Now().AddDate(0, 0, expiresIn),
			IssueDate:        time.Now(),
			RenewalFrequency: "Annual",
		})
		require.NoError(t, err)
	}

	addDoc("red doc", models.DocumentTypeTechnicalInspection, 5)
	addDoc("yellow doc", models.DocumentTypeCirculationPermit, 20)
	addDoc("green doc", models.DocumentTypeMandatoryInsurance, 120)
	addDoc("urgent but miscellaneous", models.DocumentTypeMiscellaneous, 1)

	expiring, err := svc.ExpiringDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, expiring, 2)

	assert.Equal(t, "red doc", expiring[0].Document.Name)
	assert.Equal(t, status.Red, expiring[0].Status)
	assert.Equal(t, "yellow doc", expiring[1].Document.Name)
	assert.Equal(t, status.Yellow, expiring[1].Status)
}

func TestListHistory_Limits(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	base := time.Now()
	var logs []models.HistoryLog
	for i := 0; i < 10; i++ {
		logs = append(logs, models.HistoryLog{
			Action:    models.ActionVehicleUpdated,
			Details:   "entry",
			Timestamp: base.Add(time.Duration(i) * time.Second),
			User:      "Admin",
		})
	}
	v := &models.Vehicle{
		ID:           primitive.NewObjectID(),
		Type:         "Truck",
		Project:      "North",
		Year:         2022,
		Model:        "Hilux",
		Brand:        "Toyota",
		LicensePlate: "HIST-01",
		Documents:    []models.Document{},
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	require.NoError(t, store.CreateVehicle(ctx, v, logs))

	t.Run("explicit limit", func(t *testing.T) {
		history, err := svc.ListHistory(ctx, 4)
		require.NoError(t, err)
		assert.Len(t, history, 4)
	})

	t.Run("zero falls back to default", func(t *testing.T) {
		history, err := svc.ListHistory(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, history, 10)
	})

	t.Run("newest first", func(t *testing.T) {
		history, err := svc.ListHistory(ctx, 3)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.True(t, history[0].Timestamp.After(history[1].Timestamp))
		assert.True(t, history[1].Timestamp.After(history[2].Timestamp))
	})
}
