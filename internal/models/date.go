package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout            = "2006-01-02"
	datePolishLayout      = "02.01.2006"
	datePolishShortLayout = "2.01.2006"
)

// Date is a calendar date without a time-of-day component. It marshals to
// ISO "2006-01-02" in JSON and the database, and renders as "02.01.2006"
// for Polish-facing text.
type Date struct {
	time.Time
}

// NewDate creates a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String returns the ISO rendering.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Polish returns the day.month.year rendering used in SMS text and search.
func (d Date) Polish() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(datePolishLayout)
}

// PolishShort returns the pl-PL locale rendering without a leading zero
// on the day, as the previous office tooling displayed dates.
func (d Date) PolishShort() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(datePolishShortLayout)
}

// MarshalJSON renders the date as an ISO string, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts an ISO string, an empty string, or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so dates persist as ISO strings.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner for TEXT and NULL columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		if v == "" {
			*d = Date{}
			return nil
		}
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = Date{Time: v}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
