// Package status derives expiration urgency for documents and vehicles.
// Statuses are time-relative and always computed from the current clock at
// read time; they are never stored.
package status

import (
	"math"
	"sort"
	"time"

	"fleet-docs-backend/internal/models"
)

type Status string

const (
	Red    Status = "red"
	Yellow Status = "yellow"
	Green  Status = "green"
)

// Thresholds in days until expiration, compared on calendar dates.
const (
	redThresholdDays    = 15
	yellowThresholdDays = 30
)

// DaysUntil returns the signed number of calendar days from reference to
// expiration. Both timestamps are truncated to midnight first, so two times
// on the same calendar day yield zero. Negative means already expired.
func DaysUntil(expiration, reference time.Time) int {
	// Both timestamps are read in the reference's zone, so a UTC-stored
	// expiration and a local reference on the same calendar day yield zero.
	exp := atMidnight(expiration.In(reference.Location()))
	ref := atMidnight(reference)
	// Ceil keeps whole calendar days across DST transitions, where the
	// interval between midnights is not exactly 24h.
	return int(math.Ceil(exp.Sub(ref).Hours() / 24))
}

// Classify maps an expiration date to its urgency tier relative to the
// reference date.
func Classify(expiration, reference time.Time) Status {
	days := DaysUntil(expiration, reference)
	switch {
	case days <= redThresholdDays:
		return Red
	case days <= yellowThresholdDays:
		return Yellow
	default:
		return Green
	}
}

// EarliestExpiring returns the document with the earliest expiration date,
// ignoring miscellaneous documents. Ties keep the first one encountered.
// Returns nil when no trackable document exists.
func EarliestExpiring(documents []models.Document) *models.Document {
	var earliest *models.Document
	for i := range documents {
		doc := &documents[i]
		if doc.Type == models.DocumentTypeMiscellaneous {
			continue
		}
		if earliest == nil || doc.ExpirationDate.Before(earliest.ExpirationDate) {
			earliest = doc
		}
	}
	return earliest
}

// ForVehicle returns the vehicle's overall status, driven by its earliest
// expiring trackable document. A vehicle with no trackable documents is
// never flagged.
func ForVehicle(v *models.Vehicle, reference time.Time) Status {
	earliest := EarliestExpiring(v.Documents)
	if earliest == nil {
		return Green
	}
	return Classify(earliest.ExpirationDate, reference)
}

// SortVehicles orders vehicles ascending by their earliest trackable
// expiration date. Vehicles without one sort last, keeping their relative
// order.
func SortVehicles(vehicles []*models.Vehicle) {
	sort.SliceStable(vehicles, func(i, j int) bool {
		a := EarliestExpiring(vehicles[i].Documents)
		b := EarliestExpiring(vehicles[j].Documents)
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.ExpirationDate.Before(b.ExpirationDate)
	})
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
