// Package services holds the console's business logic: student search, the
// account provisioning workflows, catalog lookups, and operator auth. Each
// service talks to the gateways through a narrow interface so tests can
// substitute mocks.
package services

import (
	"context"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/pkg/fsel"
)

// StudentDirectory is the slice of the gateway client the student-facing
// services need.
type StudentDirectory interface {
	SearchStudents(ctx context.Context, keyword string, page, pageSize int) (*models.StudentSearchPage, error)
	GetOTP(ctx context.Context, userID models.UserID) (*models.OtpData, error)
	DeleteUser(ctx context.Context, userID models.UserID) error
	SignUp(ctx context.Context, fullName, email, password string) (models.UserID, error)
	ConfirmOTP(ctx context.Context, email, otp string) error
	UpdateStudentCode(ctx context.Context, userID models.UserID, birthday *string) error
	UpdateStudentInfo(ctx context.Context, studentID models.StudentID, payload fsel.StudentInfoUpdate) error
}

// PlacementTestReader fetches placement-test results from the course gateway.
type PlacementTestReader interface {
	GetPlacementTest(ctx context.Context, studentID models.StudentID) (*models.PlacementTestData, error)
}

// PackageCatalog lists product packages from the ordering gateway.
type PackageCatalog interface {
	GetProductPackages(ctx context.Context) ([]models.ProductPackageItem, error)
}
