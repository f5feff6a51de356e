package services

import (
	"database/sql"
	"testing"
	"time"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories
type MockClientRepo struct{ mock.Mock }
type MockMembershipRepo struct{ mock.Mock }
type MockPlanRepo struct{ mock.Mock }
type MockPaymentRepo struct{ mock.Mock }
type MockAttendanceRepo struct{ mock.Mock }
type MockCashRegisterRepo struct{ mock.Mock }

// newTxDB returns a sqlmock-backed *sql.DB for services that own
// transactions.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mockDB
}

// --- MockClientRepo ---

func (m *MockClientRepo) CreateClient(executor repositories.SQLExecutor, client *models.Client) (int64, error) {
	args := m.Called(executor, client)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepo) GetClientByID(id int64) (*models.Client, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepo) GetClientByCheckInToken(token string) (*models.Client, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepo) GetClientForUpdate(executor repositories.SQLExecutor, id int64) (*models.Client, error) {
	args := m.Called(executor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepo) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	args := m.Called(page, pageSize, searchTerm)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Client), args.Int(1), args.Error(2)
}

func (m *MockClientRepo) UpdateClient(executor repositories.SQLExecutor, client *models.Client) error {
	return m.Called(executor, client).Error(0)
}

func (m *MockClientRepo) SetCheckInToken(executor repositories.SQLExecutor, id int64, token string) error {
	return m.Called(executor, id, token).Error(0)
}

func (m *MockClientRepo) DeleteClient(executor repositories.SQLExecutor, id int64) error {
	return m.Called(executor, id).Error(0)
}

// --- MockMembershipRepo ---

func (m *MockMembershipRepo) GetActiveOrLastPeriod(executor repositories.SQLExecutor, clientID int64) (*models.MembershipPeriod, error) {
	args := m.Called(executor, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPeriod), args.Error(1)
}

func (m *MockMembershipRepo) GetEffectiveActivePeriod(executor repositories.SQLExecutor, clientID int64, today time.Time) (*models.MembershipPeriod, error) {
	args := m.Called(executor, clientID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPeriod), args.Error(1)
}

func (m *MockMembershipRepo) CloseAllActive(executor repositories.SQLExecutor, clientID int64) error {
	return m.Called(executor, clientID).Error(0)
}

func (m *MockMembershipRepo) CreatePeriod(executor repositories.SQLExecutor, period *models.MembershipPeriod) (int64, error) {
	args := m.Called(executor, period)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepo) GetPeriodByID(id int64) (*models.MembershipPeriod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPeriod), args.Error(1)
}

func (m *MockMembershipRepo) GetExpiring(today, limit time.Time) ([]models.ExpiringMembership, error) {
	args := m.Called(today, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExpiringMembership), args.Error(1)
}

// --- MockPlanRepo ---

func (m *MockPlanRepo) CreatePlan(executor repositories.SQLExecutor, plan *models.MembershipPlan) (int64, error) {
	args := m.Called(executor, plan)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlanRepo) GetPlanByID(id int64) (*models.MembershipPlan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPlan), args.Error(1)
}

func (m *MockPlanRepo) GetPlans() ([]models.MembershipPlan, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MembershipPlan), args.Error(1)
}

func (m *MockPlanRepo) UpdatePlan(executor repositories.SQLExecutor, plan *models.MembershipPlan) error {
	return m.Called(executor, plan).Error(0)
}

func (m *MockPlanRepo) DeletePlan(executor repositories.SQLExecutor, id int64) error {
	return m.Called(executor, id).Error(0)
}

// --- MockPaymentRepo ---

func (m *MockPaymentRepo) CreatePayment(executor repositories.SQLExecutor, payment *models.Payment) (int64, error) {
	args := m.Called(executor, payment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepo) GetPaymentsForRange(start, end time.Time) ([]models.Payment, error) {
	args := m.Called(start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentRepo) SumByMethodForRange(executor repositories.SQLExecutor, start, end time.Time) (*models.DailyPaymentsSummary, error) {
	args := m.Called(executor, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyPaymentsSummary), args.Error(1)
}

// --- MockAttendanceRepo ---

func (m *MockAttendanceRepo) GetEntryForDay(clientID int64, start, end time.Time) (*models.AttendanceRecord, error) {
	args := m.Called(clientID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepo) CreateRecord(executor repositories.SQLExecutor, record *models.AttendanceRecord) (int64, error) {
	args := m.Called(executor, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttendanceRepo) GetEntriesForRange(start, end time.Time) ([]models.AttendanceEntry, error) {
	args := m.Called(start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceEntry), args.Error(1)
}

// --- MockCashRegisterRepo ---

func (m *MockCashRegisterRepo) CreateClosing(executor repositories.SQLExecutor, closing *models.CashRegisterClosing) (int64, error) {
	args := m.Called(executor, closing)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCashRegisterRepo) GetClosingByDate(date time.Time) (*models.CashRegisterClosing, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CashRegisterClosing), args.Error(1)
}

func (m *MockCashRegisterRepo) GetClosings(from, to *time.Time) ([]models.CashRegisterClosing, error) {
	args := m.Called(from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CashRegisterClosing), args.Error(1)
}
