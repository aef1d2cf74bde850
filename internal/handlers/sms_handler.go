package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"hvac-serwis-server/internal/services"
	"hvac-serwis-server/internal/sms"
	"hvac-serwis-server/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SMSHandler drives the reminder-SMS workflow over HTTP.
type SMSHandler struct {
	controller *sms.Controller
	roster     RosterServiceInterface
	notices    *services.NoticeBoard
}

// NewSMSHandler creates a new SMS handler
func NewSMSHandler(controller *sms.Controller, roster RosterServiceInterface, notices *services.NoticeBoard) *SMSHandler {
	return &SMSHandler{controller: controller, roster: roster, notices: notices}
}

type openRequest struct {
	ClientID int64 `json:"clientId"`
	DeviceID int64 `json:"deviceId"`
}

// Open starts a draft for one (client, device) pair. For lead clients the
// device id is ignored; their equipment is not tracked in the device store.
func (h *SMSHandler) Open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	client, err := h.roster.Get(req.ClientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to load client for SMS", zap.Int64("clientId", req.ClientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load client"})
		return
	}

	target, ok := client.DeviceByID(req.DeviceID)
	if !ok && !client.IsCustom() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}

	if err := h.controller.OpenForTarget(c.Request.Context(), *client, target); err != nil {
		h.renderWorkflowError(c, err)
		return
	}
	h.renderSession(c)
}

// Template handles POST /api/sms/template
func (h *SMSHandler) Template(c *gin.Context) {
	var tpl sms.Template
	if err := c.ShouldBindJSON(&tpl); err != nil || tpl.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Template content is required"})
		return
	}

	if err := h.controller.SelectTemplate(c.Request.Context(), tpl); err != nil {
		h.renderWorkflowError(c, err)
		return
	}
	h.renderSession(c)
}

// Reset handles POST /api/sms/reset
func (h *SMSHandler) Reset(c *gin.Context) {
	if err := h.controller.ResetToDefault(c.Request.Context()); err != nil {
		h.renderWorkflowError(c, err)
		return
	}
	h.renderSession(c)
}

type messageRequest struct {
	Message string `json:"message"`
}

// SetMessage handles PUT /api/sms/message with the user-edited draft text
func (h *SMSHandler) SetMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.controller.SetMessage(req.Message); err != nil {
		h.renderWorkflowError(c, err)
		return
	}
	h.renderSession(c)
}

// Send handles POST /api/sms/send
func (h *SMSHandler) Send(c *gin.Context) {
	if err := h.controller.ConfirmSend(c.Request.Context()); err != nil {
		h.renderWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

// Cancel handles POST /api/sms/cancel
func (h *SMSHandler) Cancel(c *gin.Context) {
	h.controller.Cancel()
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Session handles GET /api/sms/session
func (h *SMSHandler) Session(c *gin.Context) {
	session, ok := h.controller.Session()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active SMS session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// Notices handles GET /api/notices, draining buffered workflow alerts.
func (h *SMSHandler) Notices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notices": h.notices.Drain()})
}

func (h *SMSHandler) renderSession(c *gin.Context) {
	session, ok := h.controller.Session()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SMSHandler) renderWorkflowError(c *gin.Context, err error) {
	var dispatchErr *sms.DispatchError
	switch {
	case errors.Is(err, sms.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, sms.ErrNoSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, sms.ErrNoPhone), errors.Is(err, sms.ErrEmptyMessage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &dispatchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": dispatchErr.Text})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
