package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateRenderings(t *testing.T) {
	d := NewDate(2024, time.April, 5)
	if d.String() != "2024-04-05" {
		t.Errorf("String() = %q", d.String())
	}
	if d.Polish() != "05.04.2024" {
		t.Errorf("Polish() = %q", d.Polish())
	}
	if d.PolishShort() != "5.04.2024" {
		t.Errorf("PolishShort() = %q", d.PolishShort())
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.April, 5)
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2024-04-05"` {
		t.Errorf("marshal = %s", out)
	}

	var back Date
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	var empty Date
	if err := json.Unmarshal([]byte("null"), &empty); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !empty.IsZero() {
		t.Error("null must decode to the zero date")
	}
}

func TestClientSurname(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{"explicit last name", Client{LastName: "Kowalski", Name: "Jan Nowak"}, "Kowalski"},
		{"last token of name", Client{Name: "Jan Maria Nowak"}, "Nowak"},
		{"single token", Client{Name: "Nowak"}, "Nowak"},
		{"empty", Client{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.Surname(); got != tt.want {
				t.Errorf("Surname() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientImportResolve(t *testing.T) {
	tests := []struct {
		name      string
		record    ClientImport
		wantPhone string
		wantKind  ClientKind
	}{
		{
			name:      "modern phone field",
			record:    ClientImport{ID: 1, Phone: "600100200"},
			wantPhone: "600100200",
			wantKind:  ClientKindRegistered,
		},
		{
			name:      "legacy telefon field",
			record:    ClientImport{ID: 2, Telefon: "700200300"},
			wantPhone: "700200300",
			wantKind:  ClientKindRegistered,
		},
		{
			name:      "phone wins over telefon",
			record:    ClientImport{ID: 3, Phone: "111", Telefon: "222"},
			wantPhone: "111",
			wantKind:  ClientKindRegistered,
		},
		{
			name:      "custom flag becomes lead",
			record:    ClientImport{ID: 4, IsCustomClient: true},
			wantPhone: "",
			wantKind:  ClientKindLead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.Resolve()
			if got.Phone != tt.wantPhone {
				t.Errorf("Phone = %q, want %q", got.Phone, tt.wantPhone)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.Devices == nil {
				t.Error("Devices must never be nil after resolve")
			}
		})
	}
}

func TestDeviceFullAddress(t *testing.T) {
	tests := []struct {
		name   string
		device Device
		want   string
	}{
		{
			name:   "free-form address wins",
			device: Device{Address: "ul. Polna 5, Warszawa", Ulica: "Inna"},
			want:   "ul. Polna 5, Warszawa",
		},
		{
			name:   "structured parts",
			device: Device{Ulica: "Polna", NrDomu: "5", NrLokalu: "2", KodPocztowy: "00-625", Miejscowosc: "Warszawa"},
			want:   "Polna 5/2, 00-625 Warszawa",
		},
		{
			name:   "town only",
			device: Device{Miejscowosc: "Kraków"},
			want:   "Kraków",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.FullAddress(); got != tt.want {
				t.Errorf("FullAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}
