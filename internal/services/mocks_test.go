package services_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/pkg/fsel"
	"github.com/fsel/admin-console-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// MockStudentDirectory is a mock implementation of services.StudentDirectory
type MockStudentDirectory struct {
	mock.Mock
}

func (m *MockStudentDirectory) SearchStudents(ctx context.Context, keyword string, page, pageSize int) (*models.StudentSearchPage, error) {
	args := m.Called(ctx, keyword, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentSearchPage), args.Error(1)
}

func (m *MockStudentDirectory) GetOTP(ctx context.Context, userID models.UserID) (*models.OtpData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OtpData), args.Error(1)
}

func (m *MockStudentDirectory) DeleteUser(ctx context.Context, userID models.UserID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStudentDirectory) SignUp(ctx context.Context, fullName, email, password string) (models.UserID, error) {
	args := m.Called(ctx, fullName, email, password)
	return args.Get(0).(models.UserID), args.Error(1)
}

func (m *MockStudentDirectory) ConfirmOTP(ctx context.Context, email, otp string) error {
	args := m.Called(ctx, email, otp)
	return args.Error(0)
}

func (m *MockStudentDirectory) UpdateStudentCode(ctx context.Context, userID models.UserID, birthday *string) error {
	args := m.Called(ctx, userID, birthday)
	return args.Error(0)
}

func (m *MockStudentDirectory) UpdateStudentInfo(ctx context.Context, studentID models.StudentID, payload fsel.StudentInfoUpdate) error {
	args := m.Called(ctx, studentID, payload)
	return args.Error(0)
}

// MockPlacementTestReader is a mock implementation of services.PlacementTestReader
type MockPlacementTestReader struct {
	mock.Mock
}

func (m *MockPlacementTestReader) GetPlacementTest(ctx context.Context, studentID models.StudentID) (*models.PlacementTestData, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlacementTestData), args.Error(1)
}

// MockPackageCatalog is a mock implementation of services.PackageCatalog
type MockPackageCatalog struct {
	mock.Mock
}

func (m *MockPackageCatalog) GetProductPackages(ctx context.Context) ([]models.ProductPackageItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductPackageItem), args.Error(1)
}
