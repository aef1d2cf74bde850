package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hvac-serwis-server/internal/db"
	"hvac-serwis-server/internal/models"
	"hvac-serwis-server/internal/sms"
	"hvac-serwis-server/pkg/logger"
)

// RecordingSender wraps the gateway sender with persistence: every attempt
// lands in the SMS log, and a successful dispatch stamps the device's
// last_sms so the sms-oldest/sms-newest roster sorts stay current.
type RecordingSender struct {
	gateway sms.Sender
	clients db.ClientRepository
	log     db.SMSLogRepository
	now     func() time.Time
}

// NewRecordingSender creates a sender that records attempts around the
// given gateway.
func NewRecordingSender(gw sms.Sender, clients db.ClientRepository, log db.SMSLogRepository) *RecordingSender {
	return &RecordingSender{gateway: gw, clients: clients, log: log, now: time.Now}
}

// Send implements sms.Sender. Bookkeeping failures are logged but never
// turn a delivered message into a reported failure.
func (s *RecordingSender) Send(ctx context.Context, req sms.SendRequest) (*sms.SendResult, error) {
	result, err := s.gateway.Send(ctx, req)

	entry := &models.SMSLogEntry{
		ClientID: req.ClientID,
		DeviceID: req.DeviceID,
		Phone:    req.Phone,
		Mode:     string(req.Mode),
		Message:  req.Message,
		SentAt:   s.now().Unix(),
	}
	switch {
	case err != nil:
		entry.Error = err.Error()
	case result == nil:
		entry.Error = "empty gateway response"
	case result.Success:
		entry.Success = true
	default:
		entry.Error = result.Error
	}

	if logErr := s.log.Record(entry); logErr != nil {
		logger.Error("Failed to record SMS attempt", zap.Error(logErr))
	}

	if entry.Success && req.DeviceID != nil {
		if touchErr := s.clients.TouchLastSms(*req.DeviceID, s.now()); touchErr != nil {
			logger.Error("Failed to update device last SMS timestamp",
				zap.Int64("deviceId", *req.DeviceID), zap.Error(touchErr))
		}
	}

	return result, err
}
