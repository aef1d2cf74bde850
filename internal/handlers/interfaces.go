package handlers

import (
	"hvac-serwis-server/internal/models"
)

// RosterServiceInterface defines the contract for roster queries
// This interface is used for dependency injection and testing
type RosterServiceInterface interface {
	Roster(q models.RosterQuery) ([]models.Client, error)
	Get(id int64) (*models.Client, error)
	SMSHistory(clientID int64, limit, offset int) ([]*models.SMSLogEntry, error)
	Import(records []models.ClientImport) (int, error)
}
