package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hvac-serwis-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRosterService is a mock implementation of RosterServiceInterface
type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) Roster(q models.RosterQuery) ([]models.Client, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *MockRosterService) Get(id int64) (*models.Client, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockRosterService) SMSHistory(clientID int64, limit, offset int) ([]*models.SMSLogEntry, error) {
	args := m.Called(clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SMSLogEntry), args.Error(1)
}

func (m *MockRosterService) Import(records []models.ClientImport) (int, error) {
	args := m.Called(records)
	return args.Int(0), args.Error(1)
}

func setupClientRouter(service RosterServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewClientHandler(service)
	r := gin.New()
	r.GET("/api/clients", handler.List)
	r.GET("/api/clients/:id", handler.Get)
	r.GET("/api/clients/:id/sms-log", handler.SMSLog)
	r.POST("/api/clients/import", handler.Import)
	return r
}

func TestClientListPassesQuery(t *testing.T) {
	service := new(MockRosterService)
	expected := models.RosterQuery{
		Search:       "kowalski",
		DeviceType:   models.DeviceTypeFilter(models.DeviceTypeHeatPump),
		Inspection:   models.InspectionWeek,
		Confirmation: models.ConfirmationConfirmed,
		Sort:         models.SortUrgency,
	}
	service.On("Roster", expected).Return([]models.Client{{ID: 1, Name: "Jan Kowalski"}}, nil)

	router := setupClientRouter(service)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet,
		"/api/clients?search=kowalski&deviceType=Pompa+ciep%C5%82a&inspection=week&confirmation=confirmed&sort=urgency", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Clients []models.Client `json:"clients"`
		Total   int             `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, int64(1), body.Clients[0].ID)
	service.AssertExpectations(t)
}

func TestClientListDefaults(t *testing.T) {
	service := new(MockRosterService)
	service.On("Roster", models.DefaultRosterQuery()).Return([]models.Client{}, nil)

	router := setupClientRouter(service)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/clients", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestClientListRejectsUnknownFilters(t *testing.T) {
	service := new(MockRosterService)
	router := setupClientRouter(service)

	for _, url := range []string{
		"/api/clients?sort=name-asc",
		"/api/clients?inspection=month",
		"/api/clients?deviceType=Lod%C3%B3wka",
		"/api/clients?confirmation=maybe",
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, url, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
	service.AssertNotCalled(t, "Roster", mock.Anything)
}

func TestClientGetNotFound(t *testing.T) {
	service := new(MockRosterService)
	service.On("Get", int64(42)).Return(nil, sqlErrNoRows())

	router := setupClientRouter(service)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/clients/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientSMSLog(t *testing.T) {
	service := new(MockRosterService)
	deviceID := int64(44)
	service.On("SMSHistory", int64(10), 5, 0).Return([]*models.SMSLogEntry{
		{ID: "log-1", ClientID: 10, DeviceID: &deviceID, Phone: "600100200", Success: true},
	}, nil)

	router := setupClientRouter(service)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/clients/10/sms-log?limit=5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), "log-1")
	service.AssertExpectations(t)
}

func TestClientSMSLogEmpty(t *testing.T) {
	service := new(MockRosterService)
	service.On("SMSHistory", int64(10), 0, 0).Return(nil, nil)

	router := setupClientRouter(service)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/clients/10/sms-log", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entries":[]`)
}

func TestClientSMSLogNotFound(t *testing.T) {
	service := new(MockRosterService)
	service.On("SMSHistory", int64(42), 0, 0).Return(nil, sqlErrNoRows())

	router := setupClientRouter(service)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/clients/42/sms-log", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientImport(t *testing.T) {
	service := new(MockRosterService)
	service.On("Import", mock.AnythingOfType("[]models.ClientImport")).Return(2, nil)

	router := setupClientRouter(service)
	w := httptest.NewRecorder()
	body := `[{"id":1,"name":"Jan","telefon":"600100200"},{"id":2,"name":"Anna","isCustomClient":true}]`
	req, _ := http.NewRequest(http.MethodPost, "/api/clients/import", jsonBody(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"created":2`)
	service.AssertExpectations(t)
}
