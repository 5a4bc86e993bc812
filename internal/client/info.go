package client

import (
	"context"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
)

// AccountInfo implements fofa.InfoClient.AccountInfo.
func (c *Client) AccountInfo(ctx context.Context) (*fofa.AccountInfo, error) {
	var info fofa.AccountInfo

	raw, err := c.get(ctx, constants.PathInfo, nil, &info)
	if err != nil {
		return nil, err
	}

	info.Raw = raw

	return &info, nil
}

// Products implements fofa.InfoClient.Products.
func (c *Client) Products(ctx context.Context) (*fofa.ProductsResponse, error) {
	var products fofa.ProductsResponse

	raw, err := c.get(ctx, constants.PathProducts, nil, &products)
	if err != nil {
		return nil, err
	}

	products.Raw = raw

	return &products, nil
}

// Apps implements fofa.InfoClient.Apps.
func (c *Client) Apps(ctx context.Context) (*fofa.AppsResponse, error) {
	var apps fofa.AppsResponse

	raw, err := c.get(ctx, constants.PathApps, nil, &apps)
	if err != nil {
		return nil, err
	}

	apps.Raw = raw

	return &apps, nil
}
