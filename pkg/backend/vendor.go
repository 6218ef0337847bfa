package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mealbasket/gateway/pkg/models"
)

func vendorPath(vendorID string, rest string) string {
	return fmt.Sprintf("/vendor/%s%s", url.PathEscape(vendorID), rest)
}

func (c *Client) VendorProfile(ctx context.Context, token, vendorID string) (*models.VendorProfile, error) {
	var raw rawVendor
	if err := c.do(ctx, http.MethodGet, vendorPath(vendorID, ""), token, nil, &raw); err != nil {
		return nil, err
	}
	profile := raw.normalize()
	return &profile, nil
}

func (c *Client) VendorProducts(ctx context.Context, token, vendorID string) ([]models.Product, error) {
	var raw []rawProduct
	if err := c.do(ctx, http.MethodGet, vendorPath(vendorID, "/products"), token, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeProducts(raw), nil
}

// CreateVendorProduct posts a draft and returns the backend's authoritative
// echo of the created product.
func (c *Client) CreateVendorProduct(ctx context.Context, token, vendorID string, draft models.ProductDraft) (*models.Product, error) {
	var raw rawProduct
	if err := c.do(ctx, http.MethodPost, vendorPath(vendorID, "/products"), token, draft, &raw); err != nil {
		return nil, err
	}
	p := raw.normalize()
	return &p, nil
}

func (c *Client) UpdateVendorProduct(ctx context.Context, token, vendorID, productID string, patch models.ProductPatch) (*models.Product, error) {
	path := vendorPath(vendorID, "/products/"+url.PathEscape(productID))
	var raw rawProduct
	if err := c.do(ctx, http.MethodPut, path, token, patch, &raw); err != nil {
		return nil, err
	}
	p := raw.normalize()
	return &p, nil
}

func (c *Client) DeleteVendorProduct(ctx context.Context, token, vendorID, productID string) error {
	path := vendorPath(vendorID, "/products/"+url.PathEscape(productID))
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}
