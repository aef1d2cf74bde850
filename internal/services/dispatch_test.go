package services

import (
	"context"
	"errors"
	"testing"

	"hvac-serwis-server/internal/models"
	"hvac-serwis-server/internal/sms"
)

type fakeGateway struct {
	result *sms.SendResult
	err    error
}

func (f *fakeGateway) Send(_ context.Context, _ sms.SendRequest) (*sms.SendResult, error) {
	return f.result, f.err
}

type fakeSMSLog struct {
	entries []*models.SMSLogEntry
	err     error
}

func (f *fakeSMSLog) Record(entry *models.SMSLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeSMSLog) ListByClient(int64, int, int) ([]*models.SMSLogEntry, error) {
	return f.entries, nil
}

func TestRecordingSenderSuccess(t *testing.T) {
	clients := &fakeClientRepo{}
	log := &fakeSMSLog{}
	sender := NewRecordingSender(&fakeGateway{result: &sms.SendResult{Success: true}}, clients, log)
	sender.now = fixedNow

	deviceID := int64(4)
	result, err := sender.Send(context.Background(), sms.SendRequest{
		DeviceID: &deviceID,
		ClientID: 1,
		Phone:    "600100200",
		Mode:     sms.SendModeInspectionReminder,
	})

	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if !result.Success {
		t.Error("expected the gateway result handed through")
	}
	if len(log.entries) != 1 || !log.entries[0].Success {
		t.Fatalf("expected one successful log entry, got %+v", log.entries)
	}
	if got, ok := clients.touched[deviceID]; !ok || !got.Equal(fixedNow()) {
		t.Errorf("expected last SMS touched at %v, got %v", fixedNow(), got)
	}
}

func TestRecordingSenderFailureStillLogged(t *testing.T) {
	clients := &fakeClientRepo{}
	log := &fakeSMSLog{}
	sender := NewRecordingSender(&fakeGateway{err: errors.New("connection refused")}, clients, log)
	sender.now = fixedNow

	deviceID := int64(4)
	_, err := sender.Send(context.Background(), sms.SendRequest{DeviceID: &deviceID, ClientID: 1, Phone: "600", Mode: sms.SendModeCustom, Message: "x"})

	if err == nil {
		t.Fatal("expected the gateway error handed through")
	}
	if len(log.entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(log.entries))
	}
	if log.entries[0].Success {
		t.Error("failed attempt must not be marked successful")
	}
	if len(clients.touched) != 0 {
		t.Error("failed attempt must not touch last SMS")
	}
}

func TestRecordingSenderLeadSkipsTouch(t *testing.T) {
	clients := &fakeClientRepo{}
	log := &fakeSMSLog{}
	sender := NewRecordingSender(&fakeGateway{result: &sms.SendResult{Success: true}}, clients, log)
	sender.now = fixedNow

	_, err := sender.Send(context.Background(), sms.SendRequest{ClientID: 2, Phone: "700", Mode: sms.SendModeCustom, Message: "x"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if len(clients.touched) != 0 {
		t.Error("lead dispatches carry no device to touch")
	}
}

func TestRecordingSenderBookkeepingErrorIsSwallowed(t *testing.T) {
	clients := &fakeClientRepo{}
	log := &fakeSMSLog{err: errors.New("disk full")}
	sender := NewRecordingSender(&fakeGateway{result: &sms.SendResult{Success: true}}, clients, log)

	result, err := sender.Send(context.Background(), sms.SendRequest{ClientID: 1, Phone: "600", Mode: sms.SendModeCustom, Message: "x"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if !result.Success {
		t.Error("a delivered message must stay delivered despite log failures")
	}
}

func TestNoticeBoardDrain(t *testing.T) {
	board := NewNoticeBoard()
	board.ShowError("błąd")
	board.ShowWarning("uwaga")
	board.ShowSuccess("wysłano")

	notices := board.Drain()
	if len(notices) != 3 {
		t.Fatalf("notices = %d, want 3", len(notices))
	}
	if notices[0].Level != "error" || notices[0].Text != "błąd" {
		t.Errorf("first notice = %+v", notices[0])
	}

	if len(board.Drain()) != 0 {
		t.Error("drain must clear the buffer")
	}
}
