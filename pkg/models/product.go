package models

// Product is owned by the backend; the gateway never mutates it directly
// except through vendor-management calls that echo back the authoritative
// object.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Vendor      string  `json:"vendor,omitempty"`
	VendorID    string  `json:"vendor_id,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Stock       int     `json:"stock,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// VendorProfile is the single typed representation vendor records are
// normalized into at the backend boundary, whatever field names the backend
// happened to use (shopName vs businessName vs name).
type VendorProfile struct {
	ID           string  `json:"id"`
	ShopName     string  `json:"shop_name"`
	BusinessType string  `json:"business_type"`
	Email        string  `json:"email,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	ProductCount int     `json:"product_count,omitempty"`
	OrderCount   int     `json:"order_count,omitempty"`
}

type ProductDraft struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

// ProductPatch carries partial updates; nil fields are left untouched by the
// backend.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}
