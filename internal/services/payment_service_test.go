package services

import (
	"errors"
	"testing"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func monthlyPlan() *models.MembershipPlan {
	return &models.MembershipPlan{
		ID:           1,
		Name:         "Mensual",
		DurationDays: 30,
		Price:        decimal.NewFromInt(30000),
	}
}

func TestRecordPayment_FirstPaymentActivatesMembership(t *testing.T) {
	db, mockDB := newTxDB(t)
	paymentRepo := new(MockPaymentRepo)
	membershipRepo := new(MockMembershipRepo)
	planRepo := new(MockPlanRepo)
	clientRepo := new(MockClientRepo)
	clk := testClock(t)
	svc := NewPaymentService(paymentRepo, membershipRepo, planRepo, clientRepo, clk, db)

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	clientRepo.On("GetClientForUpdate", mock.Anything, int64(10)).Return(&models.Client{ID: 10}, nil)
	membershipRepo.On("GetEffectiveActivePeriod", mock.Anything, int64(10), mock.Anything).
		Return(nil, repositories.ErrNotFound)
	planRepo.On("GetPlanByID", int64(1)).Return(monthlyPlan(), nil)
	membershipRepo.On("CloseAllActive", mock.Anything, int64(10)).Return(nil)
	membershipRepo.On("CreatePeriod", mock.Anything, mock.AnythingOfType("*models.MembershipPeriod")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.MembershipPeriod).ID = 77
		}).
		Return(int64(77), nil)
	paymentRepo.On("CreatePayment", mock.Anything, mock.AnythingOfType("*models.Payment")).
		Return(int64(99), nil)

	planID := int64(1)
	result, err := svc.RecordPaymentAndActivate(RecordPaymentRequest{
		ClientID: 10,
		PlanID:   &planID,
		Method:   models.PaymentMethodCash,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(77), result.Period.ID)
	assert.Equal(t, models.PeriodStatusActive, result.Period.Status)
	assert.Equal(t, clk.Today().AddDate(0, 0, 30), result.Period.EndDate)
	// Amount omitted, so the plan's list price is charged.
	assert.True(t, result.Payment.Amount.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, int64(77), *result.Payment.PeriodID)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecordPayment_RejectedWhileMembershipStillValid(t *testing.T) {
	db, mockDB := newTxDB(t)
	paymentRepo := new(MockPaymentRepo)
	membershipRepo := new(MockMembershipRepo)
	clk := testClock(t)
	svc := NewPaymentService(paymentRepo, membershipRepo, new(MockPlanRepo), newLockedClientRepo(11), clk, db)

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	membershipRepo.On("GetEffectiveActivePeriod", mock.Anything, int64(11), mock.Anything).
		Return(&models.MembershipPeriod{
			ID:       5,
			ClientID: 11,
			Status:   models.PeriodStatusActive,
			EndDate:  clk.Today().AddDate(0, 0, 12),
		}, nil)

	result, err := svc.RecordPaymentAndActivate(RecordPaymentRequest{
		ClientID: 11,
		Method:   models.PaymentMethodCard,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrMembershipStillActive)
	paymentRepo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecordPayment_OverrideAmountHonored(t *testing.T) {
	db, mockDB := newTxDB(t)
	paymentRepo := new(MockPaymentRepo)
	membershipRepo := new(MockMembershipRepo)
	planRepo := new(MockPlanRepo)
	svc := NewPaymentService(paymentRepo, membershipRepo, planRepo, newLockedClientRepo(12), testClock(t), db)

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	membershipRepo.On("GetEffectiveActivePeriod", mock.Anything, int64(12), mock.Anything).
		Return(nil, repositories.ErrNotFound)
	planRepo.On("GetPlanByID", int64(1)).Return(monthlyPlan(), nil)
	membershipRepo.On("CloseAllActive", mock.Anything, int64(12)).Return(nil)
	membershipRepo.On("CreatePeriod", mock.Anything, mock.Anything).Return(int64(1), nil)
	paymentRepo.On("CreatePayment", mock.Anything, mock.Anything).Return(int64(2), nil)

	planID := int64(1)
	discounted := decimal.NewFromInt(25000)
	result, err := svc.RecordPaymentAndActivate(RecordPaymentRequest{
		ClientID: 12,
		PlanID:   &planID,
		Amount:   &discounted,
		Method:   models.PaymentMethodTransfer,
	})

	assert.NoError(t, err)
	assert.True(t, result.Payment.Amount.Equal(discounted))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecordPayment_RenewalReusesLastPlan(t *testing.T) {
	db, mockDB := newTxDB(t)
	paymentRepo := new(MockPaymentRepo)
	membershipRepo := new(MockMembershipRepo)
	planRepo := new(MockPlanRepo)
	svc := NewPaymentService(paymentRepo, membershipRepo, planRepo, newLockedClientRepo(13), testClock(t), db)

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	membershipRepo.On("GetEffectiveActivePeriod", mock.Anything, int64(13), mock.Anything).
		Return(nil, repositories.ErrNotFound)
	membershipRepo.On("GetActiveOrLastPeriod", mock.Anything, int64(13)).
		Return(&models.MembershipPeriod{ID: 3, ClientID: 13, PlanID: 1, Status: models.PeriodStatusExpired}, nil)
	planRepo.On("GetPlanByID", int64(1)).Return(monthlyPlan(), nil)
	membershipRepo.On("CloseAllActive", mock.Anything, int64(13)).Return(nil)
	membershipRepo.On("CreatePeriod", mock.Anything, mock.Anything).Return(int64(4), nil)
	paymentRepo.On("CreatePayment", mock.Anything, mock.Anything).Return(int64(5), nil)

	result, err := svc.RecordPaymentAndActivate(RecordPaymentRequest{
		ClientID: 13,
		Method:   models.PaymentMethodCash,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Period.PlanID)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecordPayment_NoPriorPlan(t *testing.T) {
	db, mockDB := newTxDB(t)
	membershipRepo := new(MockMembershipRepo)
	svc := NewPaymentService(new(MockPaymentRepo), membershipRepo, new(MockPlanRepo), newLockedClientRepo(14), testClock(t), db)

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	membershipRepo.On("GetEffectiveActivePeriod", mock.Anything, int64(14), mock.Anything).
		Return(nil, repositories.ErrNotFound)
	membershipRepo.On("GetActiveOrLastPeriod", mock.Anything, int64(14)).
		Return(nil, repositories.ErrNotFound)

	result, err := svc.RecordPaymentAndActivate(RecordPaymentRequest{
		ClientID: 14,
		Method:   models.PaymentMethodCash,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoPriorPlan)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecordPayment_ConcurrentRenewalMapsToStillActive(t *testing.T) {
	db, mockDB := newTxDB(t)
	membershipRepo := new(MockMembershipRepo)
	planRepo := new(MockPlanRepo)
	svc := NewPaymentService(new(MockPaymentRepo), membershipRepo, planRepo, newLockedClientRepo(15), testClock(t), db)

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	membershipRepo.On("GetEffectiveActivePeriod", mock.Anything, int64(15), mock.Anything).
		Return(nil, repositories.ErrNotFound)
	planRepo.On("GetPlanByID", int64(1)).Return(monthlyPlan(), nil)
	membershipRepo.On("CloseAllActive", mock.Anything, int64(15)).Return(nil)
	// The partial unique index rejected the second concurrent activation.
	membershipRepo.On("CreatePeriod", mock.Anything, mock.Anything).
		Return(int64(0), repositories.ErrDuplicateKey)

	planID := int64(1)
	result, err := svc.RecordPaymentAndActivate(RecordPaymentRequest{
		ClientID: 15,
		PlanID:   &planID,
		Method:   models.PaymentMethodCash,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrMembershipStillActive)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecordPayment_RollbackWhenPaymentInsertFails(t *testing.T) {
	db, mockDB := newTxDB(t)
	paymentRepo := new(MockPaymentRepo)
	membershipRepo := new(MockMembershipRepo)
	planRepo := new(MockPlanRepo)
	svc := NewPaymentService(paymentRepo, membershipRepo, planRepo, newLockedClientRepo(16), testClock(t), db)

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	membershipRepo.On("GetEffectiveActivePeriod", mock.Anything, int64(16), mock.Anything).
		Return(nil, repositories.ErrNotFound)
	planRepo.On("GetPlanByID", int64(1)).Return(monthlyPlan(), nil)
	membershipRepo.On("CloseAllActive", mock.Anything, int64(16)).Return(nil)
	membershipRepo.On("CreatePeriod", mock.Anything, mock.Anything).Return(int64(8), nil)
	paymentRepo.On("CreatePayment", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("connection reset"))

	planID := int64(1)
	result, err := svc.RecordPaymentAndActivate(RecordPaymentRequest{
		ClientID: 16,
		PlanID:   &planID,
		Method:   models.PaymentMethodCash,
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRecordPayment_InvalidMethodRejectedBeforeTransaction(t *testing.T) {
	svc := NewPaymentService(new(MockPaymentRepo), new(MockMembershipRepo), new(MockPlanRepo), new(MockClientRepo), testClock(t), nil)

	result, err := svc.RecordPaymentAndActivate(RecordPaymentRequest{
		ClientID: 17,
		Method:   "cheque",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

// newLockedClientRepo is a client repo mock that answers the row-lock read.
func newLockedClientRepo(id int64) *MockClientRepo {
	repo := new(MockClientRepo)
	repo.On("GetClientForUpdate", mock.Anything, id).Return(&models.Client{ID: id}, nil)
	return repo
}
