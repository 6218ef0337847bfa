package backend

import (
	"encoding/json"
	"strings"

	"github.com/mealbasket/gateway/pkg/models"
)

// The backend is loose about payload shapes: ids arrive as numbers or
// strings, vendors as embedded objects or bare names, and the shop name under
// shopName, businessName or plain name depending on the endpoint. Everything
// is normalized here, at the boundary, so view logic never guesses at field
// names.

// flexID decodes a JSON number or string into a string id.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = flexID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type rawVendor struct {
	ID           flexID  `json:"id"`
	ShopName     string  `json:"shopName"`
	BusinessName string  `json:"businessName"`
	Name         string  `json:"name"`
	BusinessType string  `json:"businessType"`
	Email        string  `json:"email"`
	Rating       float64 `json:"rating"`
	ProductCount int     `json:"productCount"`
	OrderCount   int     `json:"orderCount"`
}

func (r rawVendor) normalize() models.VendorProfile {
	shopName := r.ShopName
	if shopName == "" {
		shopName = r.BusinessName
	}
	if shopName == "" {
		shopName = r.Name
	}
	businessType := r.BusinessType
	if businessType == "" {
		businessType = "N/A"
	}
	return models.VendorProfile{
		ID:           string(r.ID),
		ShopName:     shopName,
		BusinessType: businessType,
		Email:        r.Email,
		Rating:       r.Rating,
		ProductCount: r.ProductCount,
		OrderCount:   r.OrderCount,
	}
}

type rawProduct struct {
	ID          flexID          `json:"id"`
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Vendor      json.RawMessage `json:"vendor"`
	VendorName  string          `json:"vendorName"`
	VendorID    flexID          `json:"vendorId"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
}

func (r rawProduct) normalize() models.Product {
	p := models.Product{
		ID:          string(r.ID),
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Category:    r.Category,
		Vendor:      r.VendorName,
		VendorID:    string(r.VendorID),
		Rating:      r.Rating,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
	}

	// vendor may be an embedded object, a bare name string, or absent.
	if len(r.Vendor) > 0 {
		var embedded rawVendor
		if err := json.Unmarshal(r.Vendor, &embedded); err == nil && (embedded.ID != "" || embedded.ShopName != "" || embedded.Name != "") {
			norm := embedded.normalize()
			p.Vendor = norm.ShopName
			if p.VendorID == "" {
				p.VendorID = norm.ID
			}
		} else {
			var name string
			if err := json.Unmarshal(r.Vendor, &name); err == nil && name != "" {
				p.Vendor = name
			}
		}
	}
	return p
}

func normalizeProducts(raw []rawProduct) []models.Product {
	products := make([]models.Product, len(raw))
	for i, r := range raw {
		products[i] = r.normalize()
	}
	return products
}

type rawUser struct {
	ID    flexID      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func (r rawUser) normalize() models.User {
	role := r.Role
	if role == "" {
		role = models.RoleUser
	}
	return models.User{
		ID:    string(r.ID),
		Name:  r.Name,
		Email: r.Email,
		Role:  role,
	}
}
