package models

// SMSLogEntry records a single dispatch attempt, successful or not.
type SMSLogEntry struct {
	ID       string `json:"id"` // UUID
	ClientID int64  `json:"clientId"`
	DeviceID *int64 `json:"deviceId,omitempty"` // nil for lead clients
	Phone    string `json:"phone"`
	Mode     string `json:"mode"`
	Message  string `json:"message,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	SentAt   int64  `json:"sentAt"` // Unix timestamp
}
