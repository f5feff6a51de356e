package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gym_backend/internal/models"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCashRegisterService struct{ mock.Mock }

func (m *MockCashRegisterService) CloseRegister(operatorID int64, req services.CloseRegisterRequest) (*models.CashRegisterClosing, error) {
	args := m.Called(operatorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CashRegisterClosing), args.Error(1)
}

func (m *MockCashRegisterService) GetClosing(date string) (*models.CashRegisterClosing, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CashRegisterClosing), args.Error(1)
}

func (m *MockCashRegisterService) ListClosings(from, to string) ([]models.CashRegisterClosing, error) {
	args := m.Called(from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CashRegisterClosing), args.Error(1)
}

func newCashRegisterRouter(svc services.CashRegisterService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewCashRegisterHandler(svc)
	engine.POST("/cash-closings", func(c *gin.Context) {
		c.Set("userID", int64(5))
		h.CloseRegister(c)
	})
	engine.GET("/cash-closings/:date", h.GetClosing)
	return engine
}

func TestCloseRegister_SecondClosingIsBadRequest(t *testing.T) {
	svc := new(MockCashRegisterService)
	engine := newCashRegisterRouter(svc)

	svc.On("CloseRegister", int64(5), mock.Anything).Return(nil, services.ErrRegisterAlreadyClosed)

	rec := postJSON(t, engine, "/cash-closings", gin.H{
		"date":     "2024-02-01",
		"declared": gin.H{"cash": "2400", "card": "2000", "transfer": "0"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ALREADY_CLOSED", errorCode(t, rec))
}

func TestCloseRegister_Created(t *testing.T) {
	svc := new(MockCashRegisterService)
	engine := newCashRegisterRouter(svc)

	closing := &models.CashRegisterClosing{ID: 9, OperatorID: 5, VarianceTotal: decimal.NewFromInt(-100)}
	svc.On("CloseRegister", int64(5), mock.Anything).Return(closing, nil)

	rec := postJSON(t, engine, "/cash-closings", gin.H{
		"declared": gin.H{"cash": "2500", "card": "2000", "transfer": "0"},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetClosing_MissingDateIsNotFound(t *testing.T) {
	svc := new(MockCashRegisterService)
	engine := newCashRegisterRouter(svc)

	svc.On("GetClosing", "2024-02-02").Return(nil, services.ErrClosingNotFound)

	req := httptest.NewRequest(http.MethodGet, "/cash-closings/2024-02-02", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}
