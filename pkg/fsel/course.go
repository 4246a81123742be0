package fsel

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/pkg/retry"
)

// GetPlacementTest fetches a student's placement-test result from the course
// gateway. Keyed by StudentID; results are permanent, which is why a reset
// means recreating the whole account.
func (c *Client) GetPlacementTest(ctx context.Context, studentID models.StudentID) (*models.PlacementTestData, error) {
	endpoint := fmt.Sprintf("%s/v1.1/placement-test-result/placement-test/%s",
		c.cfg.CourseBaseURL, url.PathEscape(studentID.String()))

	return retry.DoWithResult(ctx, retry.GatewayReadConfig(), "get_placement_test", func() (*models.PlacementTestData, error) {
		var result models.PlacementTestData
		err := c.call(ctx, "course", "get_placement_test", "GET", endpoint,
			nil, true, "Failed to fetch placement test results.", &result)
		if err != nil {
			return nil, err
		}
		return &result, nil
	})
}
