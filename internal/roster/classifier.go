// Package roster implements the client list query engine: inspection
// urgency classification, free-text search, multi-dimension filtering and
// stable sorting. Every function takes an explicit "now" so results are
// deterministic under test; only the outermost call site supplies the real
// clock.
package roster

import (
	"time"

	"hvac-serwis-server/internal/models"
)

// InspectionPeriod is the coarse urgency bucket derived from the days
// remaining until a device's next inspection.
type InspectionPeriod string

const (
	PeriodOverdue InspectionPeriod = "overdue"
	PeriodUrgent  InspectionPeriod = "urgent"
	PeriodSoon    InspectionPeriod = "soon"
	PeriodLater   InspectionPeriod = "later"
)

// DefaultSoonThresholdDays is the window used by IsInspectionSoon callers
// that do not override the threshold.
const DefaultSoonThresholdDays = 30

// DaysUntil returns the signed, fractional number of days from now until
// the given date. Negative values mean the date has passed.
func DaysUntil(d models.Date, now time.Time) float64 {
	return d.Sub(now).Hours() / 24
}

// ClassifyInspection maps a next-inspection date to its urgency bucket.
// The boundaries are inclusive: 0..30 days is urgent, 30..90 is soon,
// beyond 90 is later, anything in the past is overdue. Returns ok=false
// when the date is absent.
func ClassifyInspection(d *models.Date, now time.Time) (InspectionPeriod, bool) {
	if d == nil || d.IsZero() {
		return "", false
	}
	diff := DaysUntil(*d, now)
	switch {
	case diff < 0:
		return PeriodOverdue, true
	case diff <= 30:
		return PeriodUrgent, true
	case diff <= 90:
		return PeriodSoon, true
	default:
		return PeriodLater, true
	}
}

// IsInspectionSoon reports whether the date falls within the next
// thresholdDays days, inclusive on both ends. Absent dates are never soon.
func IsInspectionSoon(d *models.Date, thresholdDays float64, now time.Time) bool {
	if d == nil || d.IsZero() {
		return false
	}
	diff := DaysUntil(*d, now)
	return diff >= 0 && diff <= thresholdDays
}
