package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"hvac-serwis-server/internal/models"
	"hvac-serwis-server/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientHandler serves the filtered, sorted client roster
type ClientHandler struct {
	roster RosterServiceInterface
}

// NewClientHandler creates a new client handler
func NewClientHandler(roster RosterServiceInterface) *ClientHandler {
	return &ClientHandler{roster: roster}
}

// List handles GET /api/clients. Filter and sort selections arrive as
// query parameters; unknown values are rejected with 400 rather than
// silently widened to "all".
func (h *ClientHandler) List(c *gin.Context) {
	query, err := parseRosterQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clients, err := h.roster.Roster(query)
	if err != nil {
		logger.Error("Failed to load client roster", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"total":   len(clients),
	})
}

// Get handles GET /api/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	client, err := h.roster.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to load client", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// SMSLog handles GET /api/clients/:id/sms-log
func (h *ClientHandler) SMSLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	// Out-of-range values are clamped by the repository.
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	entries, err := h.roster.SMSHistory(id, limit, offset)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to load SMS history", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load SMS history"})
		return
	}
	if entries == nil {
		entries = []*models.SMSLogEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// Import handles POST /api/clients/import with a JSON export from the
// previous office tooling.
func (h *ClientHandler) Import(c *gin.Context) {
	var records []models.ClientImport
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.roster.Import(records)
	if err != nil {
		logger.Error("Client import failed", zap.Int("created", created), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Import failed",
			"created": created,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": created})
}

func parseRosterQuery(c *gin.Context) (models.RosterQuery, error) {
	q := models.DefaultRosterQuery()
	q.Search = c.Query("search")

	var err error
	if q.DeviceType, err = models.ParseDeviceTypeFilter(c.Query("deviceType")); err != nil {
		return q, err
	}
	if q.Inspection, err = models.ParseInspectionFilter(c.Query("inspection")); err != nil {
		return q, err
	}
	if q.Confirmation, err = models.ParseConfirmationFilter(c.Query("confirmation")); err != nil {
		return q, err
	}
	if q.Sort, err = models.ParseSortOption(c.Query("sort")); err != nil {
		return q, err
	}
	return q, nil
}
