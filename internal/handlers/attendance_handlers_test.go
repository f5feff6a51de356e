package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gym_backend/internal/clock"
	"gym_backend/internal/models"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAttendanceService struct{ mock.Mock }

func (m *MockAttendanceService) CheckIn(clientID int64) (*services.CheckInResult, error) {
	args := m.Called(clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CheckInResult), args.Error(1)
}

func (m *MockAttendanceService) CheckInByToken(token string) (*services.CheckInResult, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CheckInResult), args.Error(1)
}

func (m *MockAttendanceService) RegisterExit(clientID int64) (*models.AttendanceRecord, error) {
	args := m.Called(clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceService) EntriesForDay(day time.Time) ([]models.AttendanceEntry, error) {
	args := m.Called(day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceEntry), args.Error(1)
}

func (m *MockAttendanceService) EntriesToday() ([]models.AttendanceEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceEntry), args.Error(1)
}

func newAttendanceRouter(svc services.AttendanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewAttendanceHandler(svc, clock.New(clock.DefaultZone))
	engine.POST("/attendance", h.RegisterEntry)
	engine.POST("/attendance/token", h.RegisterEntryByToken)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRegisterEntry_DuplicateIsConflict(t *testing.T) {
	svc := new(MockAttendanceService)
	engine := newAttendanceRouter(svc)

	svc.On("CheckIn", int64(1)).Return(&services.CheckInResult{
		Record:            &models.AttendanceRecord{ID: 1, RecordedAt: time.Now().UTC()},
		Client:            &models.Client{ID: 1},
		AlreadyRegistered: true,
	}, nil)

	rec := postJSON(t, engine, "/attendance", gin.H{"client_id": 1})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_ENTRY", errorCode(t, rec))
}

func TestRegisterEntry_NoMembershipIsForbidden(t *testing.T) {
	svc := new(MockAttendanceService)
	engine := newAttendanceRouter(svc)

	svc.On("CheckIn", int64(2)).Return(nil, services.ErrNoActiveMembership)

	rec := postJSON(t, engine, "/attendance", gin.H{"client_id": 2})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "NO_ACTIVE_MEMBERSHIP", errorCode(t, rec))
}

func TestRegisterEntryByToken_DuplicateIsOK(t *testing.T) {
	svc := new(MockAttendanceService)
	engine := newAttendanceRouter(svc)

	svc.On("CheckInByToken", "tok").Return(&services.CheckInResult{
		Record:            &models.AttendanceRecord{ID: 1, RecordedAt: time.Now().UTC()},
		Client:            &models.Client{ID: 1},
		AlreadyRegistered: true,
	}, nil)

	rec := postJSON(t, engine, "/attendance/token", gin.H{"token": "tok"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AlreadyRegistered bool `json:"already_registered"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.AlreadyRegistered)
}

func TestRegisterEntryByToken_UnknownTokenIsNotFound(t *testing.T) {
	svc := new(MockAttendanceService)
	engine := newAttendanceRouter(svc)

	svc.On("CheckInByToken", "bogus").Return(nil, services.ErrInvalidToken)

	rec := postJSON(t, engine, "/attendance/token", gin.H{"token": "bogus"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}
