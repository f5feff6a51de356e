package handlers

import (
	"net/http"
	"testing"
	"time"

	"gym_backend/internal/models"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) RecordPaymentAndActivate(req services.RecordPaymentRequest) (*services.PaymentResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PaymentResult), args.Error(1)
}

func (m *MockPaymentService) PaymentsForDay(day time.Time) (*services.DailyPayments, error) {
	args := m.Called(day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DailyPayments), args.Error(1)
}

func (m *MockPaymentService) PaymentsToday() (*services.DailyPayments, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DailyPayments), args.Error(1)
}

func newPaymentRouter(svc services.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewPaymentHandler(svc)
	engine.POST("/payments", h.RecordPayment)
	return engine
}

func TestRecordPayment_StillActiveMapsToConflict(t *testing.T) {
	svc := new(MockPaymentService)
	engine := newPaymentRouter(svc)

	svc.On("RecordPaymentAndActivate", mock.Anything).Return(nil, services.ErrMembershipStillActive)

	rec := postJSON(t, engine, "/payments", gin.H{"client_id": 1, "method": models.PaymentMethodCash})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "MEMBERSHIP_STILL_ACTIVE", errorCode(t, rec))
}

func TestRecordPayment_NoPriorPlanIsBadRequest(t *testing.T) {
	svc := new(MockPaymentService)
	engine := newPaymentRouter(svc)

	svc.On("RecordPaymentAndActivate", mock.Anything).Return(nil, services.ErrNoPriorPlan)

	rec := postJSON(t, engine, "/payments", gin.H{"client_id": 1, "method": models.PaymentMethodCash})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NO_PRIOR_PLAN", errorCode(t, rec))
}

func TestRecordPayment_InvalidMethodIsBadRequest(t *testing.T) {
	svc := new(MockPaymentService)
	engine := newPaymentRouter(svc)

	svc.On("RecordPaymentAndActivate", mock.Anything).Return(nil, services.ErrInvalidPaymentMethod)

	rec := postJSON(t, engine, "/payments", gin.H{"client_id": 1, "method": "cheque"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))
}
