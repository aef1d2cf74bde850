package db

import (
	"testing"
	"time"

	"hvac-serwis-server/internal/models"
)

func TestSMSLogRepositoryRecordAndList(t *testing.T) {
	repo := NewSMSLogRepository(setupTestDB(t))

	deviceID := int64(4)
	first := &models.SMSLogEntry{
		ClientID: 1,
		DeviceID: &deviceID,
		Phone:    "600100200",
		Mode:     "inspection_reminder",
		Success:  true,
		SentAt:   time.Now().Add(-time.Hour).Unix(),
	}
	if err := repo.Record(first); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected a generated UUID")
	}

	second := &models.SMSLogEntry{
		ClientID: 1,
		Phone:    "600100200",
		Mode:     "custom",
		Message:  "Dzień dobry",
		Error:    "Brak środków",
		SentAt:   time.Now().Unix(),
	}
	if err := repo.Record(second); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	entries, err := repo.ListByClient(1, 10, 0)
	if err != nil {
		t.Fatalf("ListByClient() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Mode != "custom" {
		t.Errorf("first entry mode = %q, want custom", entries[0].Mode)
	}
	if entries[0].DeviceID != nil {
		t.Error("custom lead entry must have no device id")
	}
	if entries[0].Success {
		t.Error("failed entry must not be marked successful")
	}
	if entries[1].DeviceID == nil || *entries[1].DeviceID != deviceID {
		t.Errorf("second entry device = %v, want %d", entries[1].DeviceID, deviceID)
	}
}

func TestSMSLogRepositoryListOtherClient(t *testing.T) {
	repo := NewSMSLogRepository(setupTestDB(t))

	entry := &models.SMSLogEntry{ClientID: 1, Phone: "600", Mode: "custom", SentAt: time.Now().Unix()}
	if err := repo.Record(entry); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	entries, err := repo.ListByClient(2, 10, 0)
	if err != nil {
		t.Fatalf("ListByClient() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestSMSLogRepositoryNilEntry(t *testing.T) {
	repo := NewSMSLogRepository(setupTestDB(t))
	if err := repo.Record(nil); err == nil {
		t.Fatal("expected an error for a nil entry")
	}
}
