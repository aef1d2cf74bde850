package models

import "fmt"

// DeviceTypeFilter narrows the roster to clients owning a given device type.
// The zero filter admits everything.
type DeviceTypeFilter string

// DeviceTypeAll admits every device type.
const DeviceTypeAll DeviceTypeFilter = "all"

// ParseDeviceTypeFilter validates a raw filter value from the API.
func ParseDeviceTypeFilter(s string) (DeviceTypeFilter, error) {
	if s == "" || s == string(DeviceTypeAll) {
		return DeviceTypeAll, nil
	}
	dt, err := ParseDeviceType(s)
	if err != nil {
		return "", fmt.Errorf("unknown device type filter: %q", s)
	}
	return DeviceTypeFilter(dt), nil
}

// Matches reports whether a device type passes the filter.
func (f DeviceTypeFilter) Matches(dt DeviceType) bool {
	return f == DeviceTypeAll || DeviceType(f) == dt
}

// InspectionFilter narrows the roster by inspection due-date window.
type InspectionFilter string

const (
	InspectionAll      InspectionFilter = "all"
	InspectionWeek     InspectionFilter = "week"
	InspectionTwoWeeks InspectionFilter = "twoweeks"
	InspectionOverdue  InspectionFilter = "overdue"
)

// ParseInspectionFilter validates a raw filter value from the API.
func ParseInspectionFilter(s string) (InspectionFilter, error) {
	if s == "" {
		return InspectionAll, nil
	}
	switch InspectionFilter(s) {
	case InspectionAll, InspectionWeek, InspectionTwoWeeks, InspectionOverdue:
		return InspectionFilter(s), nil
	default:
		return "", fmt.Errorf("unknown inspection filter: %q", s)
	}
}

// ConfirmationFilter narrows the roster to devices flagged for servicing.
type ConfirmationFilter string

const (
	ConfirmationAll       ConfirmationFilter = "all"
	ConfirmationConfirmed ConfirmationFilter = "confirmed"
)

// ParseConfirmationFilter validates a raw filter value from the API.
func ParseConfirmationFilter(s string) (ConfirmationFilter, error) {
	if s == "" {
		return ConfirmationAll, nil
	}
	switch ConfirmationFilter(s) {
	case ConfirmationAll, ConfirmationConfirmed:
		return ConfirmationFilter(s), nil
	default:
		return "", fmt.Errorf("unknown confirmation filter: %q", s)
	}
}

// SortOption selects the roster ordering.
type SortOption string

const (
	SortDefault     SortOption = "default"
	SortSurnameAsc  SortOption = "surname-asc"
	SortSurnameDesc SortOption = "surname-desc"
	SortUrgency     SortOption = "urgency"
	SortSmsOldest   SortOption = "sms-oldest"
	SortSmsNewest   SortOption = "sms-newest"
)

// ParseSortOption validates a raw sort value from the API.
func ParseSortOption(s string) (SortOption, error) {
	if s == "" {
		return SortDefault, nil
	}
	switch SortOption(s) {
	case SortDefault, SortSurnameAsc, SortSurnameDesc, SortUrgency, SortSmsOldest, SortSmsNewest:
		return SortOption(s), nil
	default:
		return "", fmt.Errorf("unknown sort option: %q", s)
	}
}

// RosterQuery is the caller-owned filter/sort selection. It is ephemeral and
// never persisted by the engine.
type RosterQuery struct {
	Search       string             `json:"search"`
	DeviceType   DeviceTypeFilter   `json:"deviceType"`
	Inspection   InspectionFilter   `json:"inspection"`
	Confirmation ConfirmationFilter `json:"confirmation"`
	Sort         SortOption         `json:"sort"`
}

// DefaultRosterQuery returns the query that admits every client in id order.
func DefaultRosterQuery() RosterQuery {
	return RosterQuery{
		DeviceType:   DeviceTypeAll,
		Inspection:   InspectionAll,
		Confirmation: ConfirmationAll,
		Sort:         SortDefault,
	}
}
