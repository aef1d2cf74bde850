package roster

import (
	"time"

	"hvac-serwis-server/internal/models"
	"hvac-serwis-server/pkg/logger"
)

// FilterClients returns the clients admitted by the query. Admission is
// existential over devices: a client passes when any single device passes
// every device-level filter. Clients without devices are only visible while
// all device-level filters are set to "all"; they can still be narrowed by
// search. A nil roster degrades to an empty result.
func FilterClients(clients []models.Client, q models.RosterQuery, now time.Time) []models.Client {
	if clients == nil {
		logger.Warn("client filtering invoked with a nil roster")
		return []models.Client{}
	}

	search := normalizeQuery(q.Search)
	out := make([]models.Client, 0, len(clients))
	for i := range clients {
		if admits(&clients[i], q, search, now) {
			out = append(out, clients[i])
		}
	}
	return out
}

func admits(c *models.Client, q models.RosterQuery, search string, now time.Time) bool {
	if !matchesNormalized(c, search) {
		return false
	}

	if len(c.Devices) == 0 {
		// A lead without equipment has nothing for the device-level
		// filters to match against, so any narrowed filter hides it.
		return q.DeviceType == models.DeviceTypeAll &&
			q.Inspection == models.InspectionAll &&
			q.Confirmation == models.ConfirmationAll
	}

	for i := range c.Devices {
		if devicePasses(&c.Devices[i], q, now) {
			return true
		}
	}
	return false
}

func devicePasses(d *models.Device, q models.RosterQuery, now time.Time) bool {
	if !q.DeviceType.Matches(d.DeviceType) {
		return false
	}
	if !inspectionWindowPasses(d, q.Inspection, now) {
		return false
	}
	if q.Confirmation == models.ConfirmationConfirmed && !d.ServiceConfirmed {
		return false
	}
	return true
}

func inspectionWindowPasses(d *models.Device, f models.InspectionFilter, now time.Time) bool {
	switch f {
	case models.InspectionAll:
		return true
	case models.InspectionWeek:
		return IsInspectionSoon(d.NextInspectionDate, 7, now)
	case models.InspectionTwoWeeks:
		return IsInspectionSoon(d.NextInspectionDate, 14, now)
	case models.InspectionOverdue:
		if d.NextInspectionDate == nil || d.NextInspectionDate.IsZero() {
			return false
		}
		return DaysUntil(*d.NextInspectionDate, now) < 0
	default:
		return true
	}
}
