package backend

import (
	"context"
	"net/http"

	"github.com/mealbasket/gateway/pkg/models"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type vendorRegisterPayload struct {
	registerPayload
	ShopName     string `json:"shopName"`
	BusinessType string `json:"businessType"`
}

type loginResponse struct {
	ID    flexID      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
	Token string      `json:"token"`
}

// Login exchanges credentials for an identity and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginPayload{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	role := resp.Role
	if role == "" {
		role = models.RoleUser
	}
	return &models.LoginResult{
		ID:    string(resp.ID),
		Email: resp.Email,
		Name:  resp.Name,
		Role:  role,
		Token: resp.Token,
	}, nil
}

// RegisterCustomer creates a customer account. It never yields a session; the
// caller is expected to log in afterwards.
func (c *Client) RegisterCustomer(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", registerPayload{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	}, nil)
}

// RegisterVendor creates a vendor account, carrying the shop metadata the
// vendor registration endpoint requires.
func (c *Client) RegisterVendor(ctx context.Context, req models.VendorRegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register/vendor", "", vendorRegisterPayload{
		registerPayload: registerPayload{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Address:  req.Address,
		},
		ShopName:     req.ShopName,
		BusinessType: req.BusinessType,
	}, nil)
}

// Logout invalidates the token upstream. Best effort; the caller clears local
// state whether or not this succeeds.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
