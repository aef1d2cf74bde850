package services

import (
	"sync"
	"time"

	"hvac-serwis-server/pkg/logger"
)

// Notice is a user-visible alert buffered for the next UI poll.
type Notice struct {
	Level string    `json:"level"` // "error", "warning" or "success"
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// NoticeBoard implements sms.Notifier. Alerts are logged and buffered so
// the front-end can drain them; they are advisory and never block the
// workflow.
type NoticeBoard struct {
	mu      sync.Mutex
	pending []Notice
}

// NewNoticeBoard creates an empty notice board.
func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{}
}

func (b *NoticeBoard) ShowError(text string) {
	logger.Warn("SMS workflow error notice: " + text)
	b.push("error", text)
}

func (b *NoticeBoard) ShowWarning(text string) {
	logger.Warn("SMS workflow warning notice: " + text)
	b.push("warning", text)
}

// ShowSuccess surfaces a transient success banner.
func (b *NoticeBoard) ShowSuccess(text string) {
	b.push("success", text)
}

// Drain returns and clears the pending notices.
func (b *NoticeBoard) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}

func (b *NoticeBoard) push(level, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, Notice{Level: level, Text: text, At: time.Now()})
}
