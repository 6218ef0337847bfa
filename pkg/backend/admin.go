package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mealbasket/gateway/pkg/models"
)

func (c *Client) AdminUsers(ctx context.Context, token string) ([]models.User, error) {
	var raw []rawUser
	if err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &raw); err != nil {
		return nil, err
	}
	users := make([]models.User, len(raw))
	for i, r := range raw {
		users[i] = r.normalize()
	}
	return users, nil
}

func (c *Client) AdminVendors(ctx context.Context, token string) ([]models.VendorProfile, error) {
	var raw []rawVendor
	if err := c.do(ctx, http.MethodGet, "/admin/vendors", token, nil, &raw); err != nil {
		return nil, err
	}
	vendors := make([]models.VendorProfile, len(raw))
	for i, r := range raw {
		vendors[i] = r.normalize()
	}
	return vendors, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), token, nil, nil)
}

// SendContactMessage forwards a contact-form message.
func (c *Client) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	return c.do(ctx, http.MethodPost, "/contact/message", "", msg, nil)
}
