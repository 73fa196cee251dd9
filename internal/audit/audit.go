// Package audit derives immutable history entries from vehicle and document
// mutations. All entries produced for one mutation share the same timestamp
// and acting user, and old/new values are always stored stringified.
package audit

import (
	"fmt"
	"time"

	"fleet-docs-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultUser is the acting identity stamped on every entry. There is no
// authentication in this system, so it is a fixed placeholder.
const DefaultUser = "Admin"

const dateLayout = "2006-01-02"

// VehicleField is one diffable vehicle attribute, captured as its stringified
// old and new values.
type VehicleField struct {
	Name string
	Old  string
	New  string
}

// VehicleCreated emits the single entry for a new vehicle.
func VehicleCreated(v *models.Vehicle, now time.Time) []models.HistoryLog {
	return []models.HistoryLog{newEntry(models.HistoryLog{
		VehicleID:   v.ID.Hex(),
		VehicleName: v.DisplayName(),
		Action:      models.ActionVehicleCreated,
		Details:     "New vehicle added to the system",
	}, now)}
}

// VehicleUpdated emits one entry per changed field. Fields whose stringified
// values are equal are skipped, so a no-op update produces no entries.
func VehicleUpdated(v *models.Vehicle, fields []VehicleField, now time.Time) []models.HistoryLog {
	var logs []models.HistoryLog
	for _, f := range fields {
		if f.Old == f.New {
			continue
		}
		logs = append(logs, newEntry(models.HistoryLog{
			VehicleID:   v.ID.Hex(),
			VehicleName: v.DisplayName(),
			Action:      models.ActionVehicleUpdated,
			Field:       f.Name,
			OldValue:    f.Old,
			NewValue:    f.New,
			Details:     fmt.Sprintf("Field %q updated", f.Name),
		}, now))
	}
	return logs
}

// VehicleDeleted emits the single entry for a vehicle removal. Documents
// removed by the cascade do not log individually.
func VehicleDeleted(v *models.Vehicle, now time.Time) []models.HistoryLog {
	return []models.HistoryLog{newEntry(models.HistoryLog{
		VehicleID:   v.ID.Hex(),
		VehicleName: v.DisplayName(),
		Action:      models.ActionVehicleDeleted,
		Details:     "Vehicle removed from the system",
	}, now)}
}

// DocumentAdded emits the single entry for a document attached to a vehicle.
func DocumentAdded(v *models.Vehicle, d *models.Document, now time.Time) []models.HistoryLog {
	return []models.HistoryLog{newEntry(models.HistoryLog{
		VehicleID:   v.ID.Hex(),
		VehicleName: v.DisplayName(),
		Action:      models.ActionDocumentAdded,
		Field:       d.Name,
		Details:     fmt.Sprintf("Document %q added", d.Name),
	}, now)}
}

// DocumentSaved emits the single entry for a document update. When the
// expiration calendar date changed the action is a renewal carrying the old
// and new dates; otherwise it is a plain update with no old/new values.
func DocumentSaved(v *models.Vehicle, before, after *models.Document, now time.Time) []models.HistoryLog {
	oldExp := before.ExpirationDate.Format(dateLayout)
	newExp := after.ExpirationDate.Format(dateLayout)

	entry := models.HistoryLog{
		VehicleID:   v.ID.Hex(),
		VehicleName: v.DisplayName(),
		Field:       after.Name,
	}
	if oldExp != newExp {
		entry.Action = models.ActionDocumentRenewed
		entry.OldValue = oldExp
		entry.NewValue = newExp
		entry.Details = fmt.Sprintf("Document renewed - new expiration date: %s", newExp)
	} else {
		entry.Action = models.ActionDocumentUpdated
		entry.Details = fmt.Sprintf("Document %q updated", after.Name)
	}
	return []models.HistoryLog{newEntry(entry, now)}
}

// DocumentDeleted emits the single entry for an explicit document removal.
func DocumentDeleted(v *models.Vehicle, d *models.Document, now time.Time) []models.HistoryLog {
	return []models.HistoryLog{newEntry(models.HistoryLog{
		VehicleID:   v.ID.Hex(),
		VehicleName: v.DisplayName(),
		Action:      models.ActionDocumentDeleted,
		Field:       d.Name,
		Details:     fmt.Sprintf("Document %q removed", d.Name),
	}, now)}
}

// Stringify renders a field value the way entries store it. Diffing happens
// on these strings, never on typed values.
func Stringify(v interface{}) string {
	return fmt.Sprintf("%v", v)
}

func newEntry(entry models.HistoryLog, now time.Time) models.HistoryLog {
	entry.ID = primitive.NewObjectID()
	entry.Timestamp = now
	entry.User = DefaultUser
	return entry
}
