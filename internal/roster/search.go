package roster

import (
	"strconv"
	"strings"

	"hvac-serwis-server/internal/models"
)

// Fixed phrases the office staff type to find devices by servicing status.
const (
	confirmedPhrase   = "potwierdzony serwis"
	unconfirmedPhrase = "niepotwierdzony serwis"
)

// Phrases that identify clients without any equipment. For these the match
// direction is reversed: the query must be contained in the phrase, not the
// phrase in the query. The office relies on typing "now", "nowe" or "brak"
// to pull up fresh leads, so the reversal is kept as-is pending product
// clarification.
var leadPhrases = []string{"brak urządzeń", "bez urządzeń", "nowe"}

// MatchesSearch reports whether the client matches a free-text query.
// Matching is a case-insensitive substring test over client fields and,
// when the client owns devices, over every device's descriptive fields,
// its date renderings and its servicing-status phrase. An empty query
// matches everything.
func MatchesSearch(c *models.Client, query string) bool {
	return matchesNormalized(c, normalizeQuery(query))
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// matchesNormalized assumes the query is already lower-cased and trimmed.
func matchesNormalized(c *models.Client, q string) bool {
	if q == "" {
		return true
	}

	clientFields := []string{
		strconv.FormatInt(c.ID, 10),
		c.Name,
		c.FirstName,
		c.LastName,
		c.Phone,
	}
	for _, f := range clientFields {
		if fieldContains(f, q) {
			return true
		}
	}

	if len(c.Devices) == 0 {
		for _, phrase := range leadPhrases {
			if strings.Contains(phrase, q) {
				return true
			}
		}
		return false
	}

	for i := range c.Devices {
		if deviceMatches(&c.Devices[i], q) {
			return true
		}
	}
	return false
}

func deviceMatches(d *models.Device, q string) bool {
	fields := []string{
		d.Address,
		d.DeviceName,
		string(d.DeviceType),
		d.Notes,
		d.Ulica,
		d.NrDomu,
		d.NrLokalu,
		d.KodPocztowy,
		d.Miejscowosc,
	}
	if d.InstallationDate != nil {
		fields = append(fields, d.InstallationDate.String(),
			d.InstallationDate.Polish(), d.InstallationDate.PolishShort())
	}
	if d.NextInspectionDate != nil {
		fields = append(fields, d.NextInspectionDate.String(),
			d.NextInspectionDate.Polish(), d.NextInspectionDate.PolishShort())
	}
	if d.ServiceConfirmed {
		fields = append(fields, confirmedPhrase)
	} else {
		fields = append(fields, unconfirmedPhrase)
	}

	for _, f := range fields {
		if fieldContains(f, q) {
			return true
		}
	}
	return false
}

func fieldContains(field, q string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), q)
}
