package adminview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbasket/gateway/pkg/backend"
	"github.com/mealbasket/gateway/pkg/events"
)

func adminServer(failProducts bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/users":
			w.Write([]byte(`{"success":true,"data":[
				{"id":1,"name":"Asha","email":"asha@example.com","role":"USER"},
				{"id":2,"name":"Bina","email":"bina@example.com","role":"USER"},
				{"id":3,"name":"Ram","email":"ram@example.com","role":"VENDOR"}
			]}`))
		case "/admin/vendors":
			w.Write([]byte(`{"success":true,"data":[
				{"id":10,"shopName":"Himalayan Kitchen","businessType":"Restaurant"},
				{"id":11,"name":""}
			]}`))
		case "/products":
			if failProducts {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"success":true,"data":[
				{"id":"p-1","name":"Momo","price":12.99},
				{"id":"p-2","name":"Thali","price":9.25}
			]}`))
		}
	}))
}

func TestRefreshComputesCounts(t *testing.T) {
	srv := adminServer(false)
	defer srv.Close()

	view := New(backend.New(srv.URL), nil)
	snap, err := view.Refresh(context.Background(), "admin-token")
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Stats.TotalUsers)
	assert.Equal(t, 1, snap.Stats.ActiveVendors)
	assert.Equal(t, 2, snap.Stats.TotalProducts)
	assert.False(t, snap.Stale)
}

func TestPartialFailureKeepsPreviousSnapshot(t *testing.T) {
	good := adminServer(false)
	view := New(backend.New(good.URL), nil)

	first, err := view.Refresh(context.Background(), "admin-token")
	require.NoError(t, err)
	good.Close()

	bad := adminServer(true)
	defer bad.Close()
	view.client = backend.New(bad.URL)

	_, err = view.Refresh(context.Background(), "admin-token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "admin refresh incomplete")

	// Users and vendors succeeded, products failed: the old snapshot must
	// survive untouched rather than being half-replaced.
	assert.Equal(t, first, view.Snapshot())
}

func TestFirstRefreshFailureLeavesNilSnapshot(t *testing.T) {
	srv := adminServer(true)
	defer srv.Close()

	view := New(backend.New(srv.URL), nil)
	_, err := view.Refresh(context.Background(), "admin-token")
	require.Error(t, err)
	assert.Nil(t, view.Snapshot())
}

func TestProductEventMarksSnapshotStale(t *testing.T) {
	srv := adminServer(false)
	defer srv.Close()

	bus := events.NewBus()
	view := New(backend.New(srv.URL), bus)

	_, err := view.Refresh(context.Background(), "admin-token")
	require.NoError(t, err)

	bus.Publish(events.Event{Type: events.ProductAdded, VendorID: "10"})
	assert.True(t, view.Snapshot().Stale)
}
