package services

import (
	"fmt"
	"time"

	"hvac-serwis-server/internal/db"
	"hvac-serwis-server/internal/models"
	"hvac-serwis-server/internal/roster"
)

// RosterService loads the client roster and runs the filter/sort engine
// over it. The real clock enters the engine only here.
type RosterService struct {
	repo   db.ClientRepository
	smsLog db.SMSLogRepository
	now    func() time.Time
}

// NewRosterService creates a new roster service.
func NewRosterService(repo db.ClientRepository, smsLog db.SMSLogRepository) *RosterService {
	return &RosterService{repo: repo, smsLog: smsLog, now: time.Now}
}

// Roster returns the clients admitted by the query, ordered by its sort
// option.
func (s *RosterService) Roster(q models.RosterQuery) ([]models.Client, error) {
	clients, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}

	now := s.now()
	filtered := roster.FilterClients(clients, q, now)
	return roster.SortClients(filtered, q.Sort, now), nil
}

// Get returns one client with devices attached.
func (s *RosterService) Get(id int64) (*models.Client, error) {
	return s.repo.GetByID(id)
}

// SMSHistory returns a client's dispatch history, newest first. The
// client must exist.
func (s *RosterService) SMSHistory(clientID int64, limit, offset int) ([]*models.SMSLogEntry, error) {
	if _, err := s.repo.GetByID(clientID); err != nil {
		return nil, err
	}
	return s.smsLog.ListByClient(clientID, limit, offset)
}

// Import resolves raw client records from the previous office tooling and
// stores them. Returns the number of clients created.
func (s *RosterService) Import(records []models.ClientImport) (int, error) {
	created := 0
	for _, rec := range records {
		client := rec.Resolve()
		if err := s.repo.Create(&client); err != nil {
			return created, fmt.Errorf("failed to import client %d: %w", rec.ID, err)
		}
		created++
	}
	return created, nil
}
