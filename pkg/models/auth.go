package models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
}

// VendorRegisterRequest carries the shop metadata the vendor registration
// endpoint requires on top of the base account fields.
type VendorRegisterRequest struct {
	RegisterRequest
	ShopName     string `json:"shop_name" binding:"required"`
	BusinessType string `json:"business_type" binding:"required"`
}

// LoginResult is what the backend's login endpoint yields on success.
type LoginResult struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}
