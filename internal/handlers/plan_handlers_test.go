package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gym_backend/internal/models"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPlanService struct{ mock.Mock }

func (m *MockPlanService) CreatePlan(req services.CreatePlanRequest) (*models.MembershipPlan, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPlan), args.Error(1)
}

func (m *MockPlanService) GetPlanByID(planID int64) (*models.MembershipPlan, error) {
	args := m.Called(planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPlan), args.Error(1)
}

func (m *MockPlanService) GetPlans() ([]models.MembershipPlan, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MembershipPlan), args.Error(1)
}

func (m *MockPlanService) UpdatePlan(planID int64, req services.UpdatePlanRequest) (*models.MembershipPlan, error) {
	args := m.Called(planID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPlan), args.Error(1)
}

func (m *MockPlanService) DeletePlan(planID int64) error {
	return m.Called(planID).Error(0)
}

func newPlanRouter(svc services.PlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewPlanHandler(svc)
	engine.GET("/plans/:id", h.GetPlanByID)
	return engine
}

func getPath(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGetPlanByID_NonNumericIDRejected(t *testing.T) {
	svc := new(MockPlanService)
	engine := newPlanRouter(svc)

	rec := getPath(t, engine, "/plans/monthly")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))
	svc.AssertNotCalled(t, "GetPlanByID", mock.Anything)
}

func TestGetPlanByID_Found(t *testing.T) {
	svc := new(MockPlanService)
	engine := newPlanRouter(svc)

	svc.On("GetPlanByID", int64(3)).Return(&models.MembershipPlan{ID: 3, Name: "Monthly"}, nil)

	rec := getPath(t, engine, "/plans/3")

	assert.Equal(t, http.StatusOK, rec.Code)
}
