// Package catalog is the product browsing view model: one loaded list, pure
// re-derivable projections over it, and an optional server-side search mode.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mealbasket/gateway/pkg/backend"
	"github.com/mealbasket/gateway/pkg/models"
)

// Source says how the currently displayed list was derived. Local filtering
// and server search can diverge in shape, so callers must be able to tell
// them apart.
type Source string

const (
	SourceNone   Source = "none"
	SourceLocal  Source = "local"
	SourceServer Source = "server"
)

type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortName      SortKey = "name"
	SortRating    SortKey = "rating"
)

type Filter struct {
	Search   string
	Category string
	Sort     SortKey
}

type ViewModel struct {
	client *backend.Client

	mu     sync.Mutex
	loaded []models.Product
	source Source
	gen    uint64
}

func New(client *backend.Client) *ViewModel {
	return &ViewModel{client: client, source: SourceNone}
}

// Load fetches the full product list and returns it to the caller, so
// concurrent requests each project over their own snapshot. The shared state
// is updated too, unless the view model moved on while the fetch was in
// flight (another Load/Search started, or Invalidate was called); a late
// result never clobbers newer state.
func (vm *ViewModel) Load(ctx context.Context) ([]models.Product, error) {
	vm.mu.Lock()
	vm.gen++
	gen := vm.gen
	vm.mu.Unlock()

	products, err := vm.client.Products(ctx)
	if err != nil {
		return nil, err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.gen == gen {
		vm.loaded = products
		vm.source = SourceLocal
	}
	return products, nil
}

// Search delegates to the backend search endpoint and returns the
// server-derived list, with the same late-result gating as Load.
func (vm *ViewModel) Search(ctx context.Context, term string) ([]models.Product, error) {
	vm.mu.Lock()
	vm.gen++
	gen := vm.gen
	vm.mu.Unlock()

	products, err := vm.client.SearchProducts(ctx, term)
	if err != nil {
		return nil, err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.gen == gen {
		vm.loaded = products
		vm.source = SourceServer
	}
	return products, nil
}

// Invalidate discards any in-flight fetch result without touching the loaded
// list, the moral equivalent of unmounting the view.
func (vm *ViewModel) Invalidate() {
	vm.mu.Lock()
	vm.gen++
	vm.mu.Unlock()
}

func (vm *ViewModel) Source() Source {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.source
}

// ApplyFilter recomputes the visible list from the loaded one. The loaded
// list is never mutated, so filters compose: search-then-sort and
// sort-then-search yield the same set.
func (vm *ViewModel) ApplyFilter(f Filter) []models.Product {
	vm.mu.Lock()
	snapshot := vm.loaded
	vm.mu.Unlock()
	return Project(snapshot, f)
}

// Project is the pure projection ApplyFilter is built on.
func Project(products []models.Product, f Filter) []models.Product {
	out := make([]models.Product, 0, len(products))
	term := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if category != "" && category != "all" && strings.ToLower(p.Category) != category {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}
