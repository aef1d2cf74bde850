package roster

import (
	"math"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"hvac-serwis-server/internal/models"
)

// SortClients returns a stably sorted copy of the roster. Equal keys keep
// their relative input order regardless of the chosen option.
func SortClients(clients []models.Client, opt models.SortOption, now time.Time) []models.Client {
	out := make([]models.Client, len(clients))
	copy(out, clients)

	switch opt {
	case models.SortSurnameAsc, models.SortSurnameDesc:
		// Collators carry internal buffers, so build one per call
		// instead of sharing a package-level instance.
		col := collate.New(language.Polish, collate.IgnoreCase)
		desc := opt == models.SortSurnameDesc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := col.CompareString(out[i].Surname(), out[j].Surname())
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})

	case models.SortUrgency:
		sort.SliceStable(out, func(i, j int) bool {
			return minInspectionDays(&out[i], now) < minInspectionDays(&out[j], now)
		})

	case models.SortSmsOldest, models.SortSmsNewest:
		newest := opt == models.SortSmsNewest
		sort.SliceStable(out, func(i, j int) bool {
			ti, oki := earliestSms(&out[i])
			tj, okj := earliestSms(&out[j])
			// Clients with no SMS history go strictly last in both
			// directions.
			if !oki {
				return false
			}
			if !okj {
				return true
			}
			if newest {
				return ti.After(tj)
			}
			return ti.Before(tj)
		})

	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID < out[j].ID
		})
	}

	return out
}

// minInspectionDays returns the most urgent signed day count across the
// client's devices; +Inf when no device carries an inspection date.
func minInspectionDays(c *models.Client, now time.Time) float64 {
	min := math.Inf(1)
	for i := range c.Devices {
		d := c.Devices[i].NextInspectionDate
		if d == nil || d.IsZero() {
			continue
		}
		if diff := DaysUntil(*d, now); diff < min {
			min = diff
		}
	}
	return min
}

func earliestSms(c *models.Client) (time.Time, bool) {
	var earliest time.Time
	found := false
	for i := range c.Devices {
		ts := c.Devices[i].LastSms
		if ts == nil {
			continue
		}
		if !found || ts.Before(earliest) {
			earliest = *ts
			found = true
		}
	}
	return earliest, found
}
