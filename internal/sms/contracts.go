package sms

import "context"

// PreviewRequest carries the fields the gateway substitutes into an SMS
// template when generating a draft.
type PreviewRequest struct {
	DeviceID       int64  `json:"deviceId"`
	ClientName     string `json:"clientName"`
	DeviceType     string `json:"deviceType"`
	DeviceName     string `json:"deviceName"`
	Address        string `json:"address"`
	InspectionDate string `json:"inspectionDate"`
	CustomTemplate string `json:"customTemplate,omitempty"`
}

// SendMode selects how the gateway produces the final message body.
type SendMode string

const (
	// SendModeCustom dispatches the message text exactly as provided.
	SendModeCustom SendMode = "custom"
	// SendModeInspectionReminder has the gateway regenerate the reminder
	// body server-side, minting a fresh confirmation link instead of
	// reusing the previewed one.
	SendModeInspectionReminder SendMode = "inspection_reminder"
)

// SendRequest is the dispatch payload. DeviceID is nil for lead clients,
// whose devices are not tracked in the primary device store.
type SendRequest struct {
	DeviceID *int64   `json:"deviceId,omitempty"`
	ClientID int64    `json:"clientId"`
	Phone    string   `json:"phone"`
	Mode     SendMode `json:"mode"`
	Message  string   `json:"message,omitempty"`
}

// SendResult is the gateway's structured reply.
type SendResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// PreviewService generates SMS drafts with template variables substituted.
type PreviewService interface {
	PreviewForDevice(ctx context.Context, req PreviewRequest) (string, error)
	PreviewTemplate(ctx context.Context, req PreviewRequest) (string, error)
}

// Sender dispatches an SMS message.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
}

// Notifier surfaces non-blocking, user-visible alerts. It is advisory; the
// controller's correctness does not depend on it.
type Notifier interface {
	ShowError(text string)
	ShowWarning(text string)
}

// Template is a reusable message body the user can pick for a draft.
type Template struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}
