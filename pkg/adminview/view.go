// Package adminview is the read-only aggregation behind the admin dashboard.
// All numbers are plain counts over freshly fetched lists; nothing is
// persisted or incrementally maintained, and a full Refresh is the only way
// to see new data.
package adminview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mealbasket/gateway/pkg/backend"
	"github.com/mealbasket/gateway/pkg/events"
	"github.com/mealbasket/gateway/pkg/models"
)

type Stats struct {
	TotalUsers    int `json:"total_users"`
	ActiveVendors int `json:"active_vendors"`
	TotalProducts int `json:"total_products"`
}

type Snapshot struct {
	Stats       Stats                  `json:"stats"`
	Users       []models.User          `json:"users"`
	Vendors     []models.VendorProfile `json:"vendors"`
	Products    []models.Product       `json:"products"`
	RefreshedAt time.Time              `json:"refreshed_at"`
	// Stale flips when a vendor mutated products after this refresh.
	Stale bool `json:"stale"`
}

type View struct {
	client *backend.Client

	mu   sync.Mutex
	snap *Snapshot
}

// New builds the view and, when a bus is given, subscribes to product
// mutations so the current snapshot can be flagged stale.
func New(client *backend.Client, bus *events.Bus) *View {
	v := &View{client: client}
	if bus != nil {
		bus.Subscribe(func(events.Event) {
			v.mu.Lock()
			if v.snap != nil {
				v.snap.Stale = true
			}
			v.mu.Unlock()
		})
	}
	return v
}

// Refresh fetches users, vendors and products and recomputes the counts. The
// three fetches fan out together; if any of them fails, the previously
// displayed snapshot is left untouched and one combined error is returned.
func (v *View) Refresh(ctx context.Context, token string) (*Snapshot, error) {
	var (
		users    []models.User
		vendors  []models.VendorProfile
		products []models.Product

		usersErr, vendorsErr, productsErr error
	)

	// Each closure returns its error so the first failure cancels gctx and
	// aborts the sibling fetches; the individual errors are joined below.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, usersErr = v.client.AdminUsers(gctx, token)
		return usersErr
	})
	g.Go(func() error {
		vendors, vendorsErr = v.client.AdminVendors(gctx, token)
		return vendorsErr
	})
	g.Go(func() error {
		products, productsErr = v.client.Products(gctx)
		return productsErr
	})
	_ = g.Wait()

	if err := errors.Join(usersErr, vendorsErr, productsErr); err != nil {
		return nil, fmt.Errorf("admin refresh incomplete: %w", err)
	}

	snap := &Snapshot{
		Stats: Stats{
			TotalUsers:    len(users),
			ActiveVendors: countActive(vendors),
			TotalProducts: len(products),
		},
		Users:       users,
		Vendors:     vendors,
		Products:    products,
		RefreshedAt: time.Now().UTC(),
	}

	v.mu.Lock()
	v.snap = snap
	v.mu.Unlock()
	return snap, nil
}

// Snapshot returns the last successful refresh, or nil before the first one.
func (v *View) Snapshot() *Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

func countActive(vendors []models.VendorProfile) int {
	active := 0
	for _, vendor := range vendors {
		if vendor.ShopName != "" {
			active++
		}
	}
	return active
}
