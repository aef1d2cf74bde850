package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"hvac-serwis-server/internal/models"
)

// SMSLogRepository persists dispatch attempts for audit and the
// reminder-history views.
type SMSLogRepository interface {
	Record(entry *models.SMSLogEntry) error
	ListByClient(clientID int64, limit, offset int) ([]*models.SMSLogEntry, error)
}

type smsLogRepository struct {
	db *sql.DB
}

// NewSMSLogRepository creates a new SMSLogRepository.
func NewSMSLogRepository(db *sql.DB) SMSLogRepository {
	return &smsLogRepository{db: db}
}

// Record inserts an attempt, generating a UUID when none is set.
func (r *smsLogRepository) Record(entry *models.SMSLogEntry) error {
	if entry == nil {
		return fmt.Errorf("log entry cannot be nil")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := r.db.Exec(`
		INSERT INTO sms_log (id, client_id, device_id, phone, mode, message, success, error, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.ClientID, entry.DeviceID, entry.Phone, entry.Mode,
		entry.Message, entry.Success, entry.Error, entry.SentAt)
	if err != nil {
		return fmt.Errorf("failed to record SMS attempt: %w", err)
	}
	return nil
}

// ListByClient returns a client's dispatch history, newest first.
func (r *smsLogRepository) ListByClient(clientID int64, limit, offset int) ([]*models.SMSLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(`
		SELECT id, client_id, device_id, phone, mode, message, success, error, sent_at
		FROM sms_log WHERE client_id = ? ORDER BY sent_at DESC LIMIT ? OFFSET ?`,
		clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list SMS log: %w", err)
	}
	defer rows.Close()

	var entries []*models.SMSLogEntry
	for rows.Next() {
		e := &models.SMSLogEntry{}
		var (
			deviceID sql.NullInt64
			message  sql.NullString
			errText  sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.ClientID, &deviceID, &e.Phone, &e.Mode,
			&message, &e.Success, &errText, &e.SentAt); err != nil {
			return nil, err
		}
		if deviceID.Valid {
			v := deviceID.Int64
			e.DeviceID = &v
		}
		e.Message = message.String
		e.Error = errText.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
