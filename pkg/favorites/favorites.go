// Package favorites is a per-context set of product references with a
// snapshot of display fields taken at favorite time.
package favorites

import (
	"log"

	"github.com/mealbasket/gateway/pkg/models"
)

type Ref struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Vendor      string  `json:"vendor,omitempty"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type Favorites struct {
	Refs map[string]*Ref `json:"refs"`
}

func New() *Favorites {
	return &Favorites{Refs: make(map[string]*Ref)}
}

// Toggle adds the product if absent and reports whether it was added. Adding
// an already-favorited product is a no-op, never a duplicate and never a
// toggle-off.
func (f *Favorites) Toggle(p models.Product) bool {
	if _, ok := f.Refs[p.ID]; ok {
		log.Printf("Warning: product %s is already in favorites", p.ID)
		return false
	}
	f.Refs[p.ID] = &Ref{
		ProductID:   p.ID,
		Name:        p.Name,
		Vendor:      p.Vendor,
		Price:       p.Price,
		Rating:      p.Rating,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
	return true
}

func (f *Favorites) Remove(productID string) {
	delete(f.Refs, productID)
}

func (f *Favorites) Contains(productID string) bool {
	_, ok := f.Refs[productID]
	return ok
}

func (f *Favorites) List() []*Ref {
	refs := make([]*Ref, 0, len(f.Refs))
	for _, ref := range f.Refs {
		refs = append(refs, ref)
	}
	return refs
}
