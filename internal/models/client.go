package models

import (
	"fmt"
	"strings"
	"time"
)

// DeviceType is the closed set of equipment kinds tracked by the service.
type DeviceType string

const (
	DeviceTypeHeatPump       DeviceType = "Pompa ciepła"
	DeviceTypeGasBoiler      DeviceType = "Kocioł gazowy"
	DeviceTypeOilBoiler      DeviceType = "Kocioł olejowy"
	DeviceTypeAirConditioner DeviceType = "Klimatyzator"
)

// ParseDeviceType validates a raw device type string.
func ParseDeviceType(s string) (DeviceType, error) {
	switch DeviceType(s) {
	case DeviceTypeHeatPump, DeviceTypeGasBoiler, DeviceTypeOilBoiler, DeviceTypeAirConditioner:
		return DeviceType(s), nil
	default:
		return "", fmt.Errorf("unknown device type: %q", s)
	}
}

// Device is a piece of HVAC equipment owned by exactly one client.
type Device struct {
	ID         int64      `json:"id"`
	ClientID   int64      `json:"clientId"`
	DeviceType DeviceType `json:"deviceType"`
	DeviceName string     `json:"deviceName,omitempty"`
	Address    string     `json:"address,omitempty"`

	// Structured address parts as entered by the office staff.
	Ulica       string `json:"ulica,omitempty"`
	NrDomu      string `json:"nrDomu,omitempty"`
	NrLokalu    string `json:"nrLokalu,omitempty"`
	KodPocztowy string `json:"kodPocztowy,omitempty"`
	Miejscowosc string `json:"miejscowosc,omitempty"`

	Notes              string     `json:"notes,omitempty"`
	InstallationDate   *Date      `json:"installationDate,omitempty"`
	NextInspectionDate *Date      `json:"nextInspectionDate,omitempty"`
	ServiceConfirmed   bool       `json:"serviceConfirmed"`
	LastSms            *time.Time `json:"lastSms,omitempty"`
}

// FullAddress returns the display address, preferring the free-form field
// and falling back to the structured parts.
func (d *Device) FullAddress() string {
	if strings.TrimSpace(d.Address) != "" {
		return d.Address
	}
	street := strings.TrimSpace(d.Ulica + " " + d.NrDomu)
	if d.NrLokalu != "" {
		street += "/" + d.NrLokalu
	}
	town := strings.TrimSpace(d.KodPocztowy + " " + d.Miejscowosc)
	switch {
	case street != "" && town != "":
		return street + ", " + town
	case street != "":
		return street
	default:
		return town
	}
}

// ClientKind distinguishes registered clients, whose devices live in the
// primary device store, from ad-hoc leads entered by hand.
type ClientKind string

const (
	ClientKindRegistered ClientKind = "registered"
	ClientKindLead       ClientKind = "lead"
)

// Client is a customer record. A client with zero devices is a valid,
// first-class state (a lead without equipment).
type Client struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name,omitempty"`
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Kind      ClientKind `json:"kind"`
	Devices   []Device   `json:"devices"`
}

// IsCustom reports whether the client is an ad-hoc lead without backing
// device rows.
func (c *Client) IsCustom() bool {
	return c.Kind == ClientKindLead
}

// DisplayName returns the best available human-readable name.
func (c *Client) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DeviceByID returns the client's device with the given id. For leads the
// zero Device stands in as the synthetic target.
func (c *Client) DeviceByID(id int64) (Device, bool) {
	for i := range c.Devices {
		if c.Devices[i].ID == id {
			return c.Devices[i], true
		}
	}
	return Device{}, false
}

// Surname returns the last name used for sorting, falling back to the last
// whitespace-separated token of the display name.
func (c *Client) Surname() string {
	if c.LastName != "" {
		return c.LastName
	}
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// ClientImport is the ingestion shape for client records coming from the
// previous office tooling. Older exports carry the phone number under
// "telefon" instead of "phone"; Resolve normalizes that exactly once so the
// rest of the code never probes optional fields.
type ClientImport struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Phone          string   `json:"phone"`
	Telefon        string   `json:"telefon"`
	IsCustomClient bool     `json:"isCustomClient"`
	Devices        []Device `json:"devices"`
}

// Resolve converts the raw import record into a Client with a single phone
// field and an explicit kind.
func (ci ClientImport) Resolve() Client {
	phone := strings.TrimSpace(ci.Phone)
	if phone == "" {
		phone = strings.TrimSpace(ci.Telefon)
	}
	kind := ClientKindRegistered
	if ci.IsCustomClient {
		kind = ClientKindLead
	}
	devices := ci.Devices
	if devices == nil {
		devices = []Device{}
	}
	return Client{
		ID:        ci.ID,
		Name:      ci.Name,
		FirstName: ci.FirstName,
		LastName:  ci.LastName,
		Phone:     phone,
		Kind:      kind,
		Devices:   devices,
	}
}
