// Package sms implements the reminder-SMS workflow: a single editable draft
// session per server, driven through preview generation, template selection
// and dispatch against an external gateway.
package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"hvac-serwis-server/internal/models"
	"hvac-serwis-server/pkg/logger"
)

// State is the lifecycle phase of an SMS session.
type State string

const (
	StateIdle           State = "idle"
	StatePreviewLoading State = "preview_loading"
	StatePreviewReady   State = "preview_ready"
	StateSending        State = "sending"
)

var (
	// ErrBusy rejects an action while a preview or send is in flight.
	ErrBusy = errors.New("poprzednia operacja SMS jeszcze trwa")
	// ErrNoSession rejects actions that need an open draft.
	ErrNoSession = errors.New("brak aktywnej sesji SMS")
	// ErrNoPhone rejects sending to a client without a phone number.
	ErrNoPhone = errors.New("klient nie ma podanego numeru telefonu")
	// ErrEmptyMessage rejects sending an empty custom draft.
	ErrEmptyMessage = errors.New("treść wiadomości nie może być pusta")
)

// DispatchError carries the user-facing text of a failed dispatch. The
// draft stays editable so the user can retry.
type DispatchError struct {
	Text string
}

func (e *DispatchError) Error() string { return e.Text }

const (
	inspectionDateFallback = "do ustalenia"
	sendFailedFallback     = "Nie udało się wysłać wiadomości SMS."
	sentNotice             = "SMS został wysłany."
	previewFailedWarning   = "Nie udało się wygenerować podglądu SMS."
)

// Session is the singular in-progress SMS composition. OriginalMessage is
// the immutable system-generated draft used to detect user edits.
type Session struct {
	Client          models.Client `json:"client"`
	Device          models.Device `json:"device"`
	Message         string        `json:"message"`
	OriginalMessage string        `json:"originalMessage"`
	Loading         bool          `json:"loading"`
	State           State         `json:"state"`
}

// Controller owns at most one Session and is the only mutator of it. All
// collaborator calls are single in-flight: a second action while loading is
// rejected rather than raced.
type Controller struct {
	mu        sync.Mutex
	session   *Session
	previews  PreviewService
	sender    Sender
	notify    Notifier
	onSuccess func(text string)
}

// NewController wires the workflow against its collaborators. onSuccess may
// be nil when the caller has no success banner to show.
func NewController(previews PreviewService, sender Sender, notify Notifier, onSuccess func(string)) *Controller {
	return &Controller{
		previews:  previews,
		sender:    sender,
		notify:    notify,
		onSuccess: onSuccess,
	}
}

// Session returns a snapshot of the current draft, or ok=false when idle.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// OpenForTarget starts a draft for one (client, device) pair, abandoning
// any prior unsent draft. Lead clients get an empty draft immediately;
// registered clients get a generated preview, falling back to a
// deterministic Polish message when generation fails.
func (c *Controller) OpenForTarget(ctx context.Context, client models.Client, device models.Device) error {
	c.mu.Lock()
	if c.session != nil && c.session.Loading {
		c.mu.Unlock()
		c.notify.ShowWarning(previewBusyText())
		return ErrBusy
	}

	if client.IsCustom() {
		// Leads have no backing device record to template against.
		c.session = &Session{
			Client: client,
			Device: device,
			State:  StatePreviewReady,
		}
		c.mu.Unlock()
		return nil
	}

	s := &Session{
		Client:  client,
		Device:  device,
		Loading: true,
		State:   StatePreviewLoading,
	}
	c.session = s
	c.mu.Unlock()

	text, err := c.previews.PreviewForDevice(ctx, previewRequest(&client, &device, ""))
	if err != nil {
		logger.Warn("SMS preview generation failed",
			zap.Int64("deviceId", device.ID), zap.Error(err))
		c.notify.ShowWarning(previewFailedWarning)
		text = fallbackPreview(&device)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != s {
		// Abandoned while the preview was in flight.
		return nil
	}
	s.Message = text
	s.OriginalMessage = text
	s.Loading = false
	s.State = StatePreviewReady
	return nil
}

// SelectTemplate replaces the draft with the template substituted
// server-side, falling back to the raw template text when substitution
// fails. Only meaningful for registered clients.
func (c *Controller) SelectTemplate(ctx context.Context, tpl Template) error {
	return c.regenerate(ctx, tpl.Content, func(err error) string {
		logger.Warn("SMS template substitution failed",
			zap.Int64("templateId", tpl.ID), zap.Error(err))
		return tpl.Content
	})
}

// ResetToDefault regenerates the initial preview for the open draft. Only
// meaningful for registered clients.
func (c *Controller) ResetToDefault(ctx context.Context) error {
	var device models.Device
	c.mu.Lock()
	if c.session != nil {
		device = c.session.Device
	}
	c.mu.Unlock()
	return c.regenerate(ctx, "", func(err error) string {
		logger.Warn("SMS preview regeneration failed", zap.Error(err))
		return fallbackPreview(&device)
	})
}

// regenerate re-requests a preview for the open session and replaces the
// editable message. The original snapshot from OpenForTarget is kept so
// edit detection still compares against the system default.
func (c *Controller) regenerate(ctx context.Context, customTemplate string, onFail func(error) string) error {
	c.mu.Lock()
	s := c.session
	if s == nil {
		c.mu.Unlock()
		return ErrNoSession
	}
	if s.Loading {
		c.mu.Unlock()
		c.notify.ShowWarning(previewBusyText())
		return ErrBusy
	}
	if s.Client.IsCustom() {
		c.mu.Unlock()
		return fmt.Errorf("klient spoza ewidencji nie ma podglądu SMS")
	}
	s.Loading = true
	s.State = StatePreviewLoading
	req := previewRequest(&s.Client, &s.Device, customTemplate)
	c.mu.Unlock()

	var (
		text string
		err  error
	)
	if customTemplate != "" {
		text, err = c.previews.PreviewTemplate(ctx, req)
	} else {
		text, err = c.previews.PreviewForDevice(ctx, req)
	}
	if err != nil {
		text = onFail(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != s {
		return nil
	}
	s.Message = text
	s.Loading = false
	s.State = StatePreviewReady
	return nil
}

// SetMessage replaces the editable draft text.
func (c *Controller) SetMessage(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ErrNoSession
	}
	if c.session.Loading {
		return ErrBusy
	}
	c.session.Message = text
	return nil
}

// ConfirmSend dispatches the open draft. An edited draft, or any lead
// draft, goes through the custom-message path; an untouched draft for a
// registered client goes through the inspection-reminder path so the
// gateway regenerates the body with a fresh confirmation link. Local
// validation failures never reach the network; dispatch failures keep the
// draft editable and return a DispatchError.
func (c *Controller) ConfirmSend(ctx context.Context) error {
	c.mu.Lock()
	s := c.session
	if s == nil {
		c.mu.Unlock()
		return ErrNoSession
	}
	if s.Loading {
		c.mu.Unlock()
		c.notify.ShowWarning("Wysyłanie SMS jest już w toku.")
		return ErrBusy
	}

	phone := strings.TrimSpace(s.Client.Phone)
	if phone == "" {
		c.mu.Unlock()
		c.notify.ShowError("Klient nie ma podanego numeru telefonu.")
		return ErrNoPhone
	}

	custom := s.Client.IsCustom()
	edited := strings.TrimSpace(s.Message) != strings.TrimSpace(s.OriginalMessage)

	var req SendRequest
	if custom || edited {
		if custom && strings.TrimSpace(s.Message) == "" {
			c.mu.Unlock()
			c.notify.ShowError("Treść wiadomości nie może być pusta.")
			return ErrEmptyMessage
		}
		req = SendRequest{
			ClientID: s.Client.ID,
			Phone:    phone,
			Mode:     SendModeCustom,
			Message:  s.Message,
		}
		if !custom {
			// Registered clients keep the device reference even on
			// the custom path; lead devices are not tracked in the
			// device store, so theirs is omitted.
			deviceID := s.Device.ID
			req.DeviceID = &deviceID
		}
	} else {
		deviceID := s.Device.ID
		req = SendRequest{
			DeviceID: &deviceID,
			ClientID: s.Client.ID,
			Phone:    phone,
			Mode:     SendModeInspectionReminder,
		}
	}

	s.Loading = true
	s.State = StateSending
	c.mu.Unlock()

	result, err := c.sender.Send(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != s {
		return nil
	}

	if err != nil || result == nil || !result.Success {
		text := sendFailedFallback
		if result != nil {
			if result.Error != "" {
				text = result.Error
			} else if result.Message != "" {
				text = result.Message
			}
		}
		if err != nil {
			logger.Error("SMS dispatch failed",
				zap.Int64("clientId", s.Client.ID), zap.Error(err))
		}
		s.Loading = false
		s.State = StatePreviewReady
		c.notify.ShowError(text)
		return &DispatchError{Text: text}
	}

	notice := sentNotice
	if result.Message != "" {
		notice = result.Message
	}
	c.session = nil
	if c.onSuccess != nil {
		c.onSuccess(notice)
	}
	return nil
}

// Cancel discards the open draft unconditionally.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

func previewRequest(client *models.Client, device *models.Device, customTemplate string) PreviewRequest {
	inspection := inspectionDateFallback
	if device.NextInspectionDate != nil && !device.NextInspectionDate.IsZero() {
		inspection = device.NextInspectionDate.Polish()
	}
	return PreviewRequest{
		DeviceID:       device.ID,
		ClientName:     client.DisplayName(),
		DeviceType:     string(device.DeviceType),
		DeviceName:     device.DeviceName,
		Address:        device.FullAddress(),
		InspectionDate: inspection,
		CustomTemplate: customTemplate,
	}
}

func fallbackPreview(device *models.Device) string {
	return fmt.Sprintf(
		"Przypomnienie o przeglądzie %s w adresie %s. Błąd podczas generowania podglądu.",
		device.DeviceType, device.FullAddress())
}

func previewBusyText() string {
	return "Poczekaj na zakończenie poprzedniej operacji SMS."
}
