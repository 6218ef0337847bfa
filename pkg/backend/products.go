package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mealbasket/gateway/pkg/models"
)

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var raw []rawProduct
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &raw); err != nil {
		return nil, err
	}
	return normalizeProducts(raw), nil
}

func (c *Client) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var raw rawProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, &raw); err != nil {
		return nil, err
	}
	p := raw.normalize()
	return &p, nil
}

// SearchProducts delegates to the backend's name search.
func (c *Client) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	var raw []rawProduct
	path := "/products/search?name=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
		return nil, err
	}
	return normalizeProducts(raw), nil
}
