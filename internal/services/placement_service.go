package services

import (
	"context"

	"github.com/fsel/admin-console-api/internal/models"
	apperrors "github.com/fsel/admin-console-api/pkg/errors"
)

// PlacementService reads placement-test results for the console's student
// detail view.
type PlacementService struct {
	reader PlacementTestReader
}

func NewPlacementService(reader PlacementTestReader) *PlacementService {
	return &PlacementService{reader: reader}
}

// GetPlacementTest fetches a student's placement-test outcome. Keyed by
// StudentID; a student who has never taken the test yields ErrNotFound.
func (s *PlacementService) GetPlacementTest(ctx context.Context, studentID models.StudentID) (*models.PlacementTestData, error) {
	if studentID == "" {
		return nil, apperrors.InvalidInputError("studentId", "is required")
	}
	data, err := s.reader.GetPlacementTest(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if data.CourseName == "" && len(data.PlacementTestResults) == 0 {
		return nil, apperrors.NotFoundError("placement test result")
	}
	return data, nil
}
