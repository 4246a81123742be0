package fsel

import (
	"context"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/pkg/retry"
)

// GetProductPackages lists purchasable packages from the ordering gateway.
// The endpoint is public; no bearer token is sent.
func (c *Client) GetProductPackages(ctx context.Context) ([]models.ProductPackageItem, error) {
	endpoint := c.cfg.OrderingBaseURL + "/v1.2/package"

	return retry.DoWithResult(ctx, retry.GatewayReadConfig(), "list_packages", func() ([]models.ProductPackageItem, error) {
		var result []models.ProductPackageItem
		err := c.call(ctx, "ordering", "list_packages", "GET", endpoint,
			nil, false, "Failed to fetch product packages.", &result)
		if err != nil {
			return nil, err
		}
		return result, nil
	})
}
