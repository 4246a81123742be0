package services

import (
	"context"

	"github.com/fsel/admin-console-api/internal/models"
	apperrors "github.com/fsel/admin-console-api/pkg/errors"
	"github.com/fsel/admin-console-api/pkg/metrics"
)

// SearchService validates and runs student searches.
type SearchService struct {
	directory StudentDirectory
}

func NewSearchService(directory StudentDirectory) *SearchService {
	return &SearchService{directory: directory}
}

// Search looks up students by exact email or phone number. Free-text
// keywords are rejected before any gateway call: the search index matches
// partial strings and a loose keyword returns unrelated accounts.
//
// Soft-deleted rows are filtered out again here even though the gateway is
// asked to exclude them; the IsDelete flag has been seen to leak rows.
func (s *SearchService) Search(ctx context.Context, keyword string, page, pageSize int) (*models.StudentSearchPage, error) {
	if !IsValidEmail(keyword) && !IsValidPhoneNumber(keyword) {
		metrics.StudentSearches.WithLabelValues("invalid_keyword").Inc()
		return nil, apperrors.InvalidInputError("keyword", "must be a full email address or phone number")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	result, err := s.directory.SearchStudents(ctx, keyword, page, pageSize)
	if err != nil {
		metrics.StudentSearches.WithLabelValues("error").Inc()
		return nil, err
	}

	filtered := make([]models.StudentSearchItem, 0, len(result.Items))
	for _, item := range result.Items {
		if item.IsDeleted {
			continue
		}
		filtered = append(filtered, item)
	}
	result.Items = filtered

	metrics.StudentSearches.WithLabelValues("success").Inc()
	return result, nil
}

// GetOTPState fetches the OTP verification state for an account, keyed by
// UserID.
func (s *SearchService) GetOTPState(ctx context.Context, userID models.UserID) (*models.OtpData, error) {
	if userID == "" {
		return nil, apperrors.InvalidInputError("userId", "is required")
	}
	return s.directory.GetOTP(ctx, userID)
}
