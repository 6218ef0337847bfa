package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbasket/gateway/pkg/backend"
	"github.com/mealbasket/gateway/pkg/models"
)

var fixture = []models.Product{
	{ID: "a", Name: "Aloo Chop", Price: 10, Category: "food", Rating: 4.2},
	{ID: "b", Name: "Lassi", Price: 5, Category: "drink", Rating: 4.8},
	{ID: "c", Name: "Chicken Momo", Price: 13, Category: "food", Rating: 4.5},
	{ID: "d", Name: "Masala Chiya", Price: 3, Category: "drink", Rating: 3.9},
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestProjectCategoryFilter(t *testing.T) {
	got := Project(fixture, Filter{Category: "food"})
	assert.ElementsMatch(t, []string{"a", "c"}, ids(got))
}

func TestProjectCategoryIgnoresPriorSort(t *testing.T) {
	// Sorting first must not change the visible set a category filter picks.
	sorted := Project(fixture, Filter{Sort: SortPriceDesc})
	got := Project(sorted, Filter{Category: "food"})
	assert.ElementsMatch(t, []string{"a", "c"}, ids(got))
}

func TestProjectSearchAndSortCommute(t *testing.T) {
	searchThenSort := Project(Project(fixture, Filter{Search: "m"}), Filter{Sort: SortPriceAsc})
	sortThenSearch := Project(Project(fixture, Filter{Sort: SortPriceAsc}), Filter{Search: "m"})

	assert.ElementsMatch(t, ids(searchThenSort), ids(sortThenSearch))
}

func TestProjectDoesNotMutateSource(t *testing.T) {
	before := ids(fixture)
	Project(fixture, Filter{Sort: SortPriceAsc, Category: "food"})
	assert.Equal(t, before, ids(fixture))
}

func TestProjectSortStability(t *testing.T) {
	got := Project(fixture, Filter{Sort: SortPriceAsc})
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(got))
}

func catalogServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			w.Write([]byte(`{"success":true,"data":[
				{"id":"a","name":"Aloo Chop","price":10,"category":"food"},
				{"id":"b","name":"Lassi","price":5,"category":"drink"}
			]}`))
		case "/products/search":
			w.Write([]byte(`{"success":true,"data":[{"id":"c","name":"Chicken Momo","price":13}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestLoadThenFilter(t *testing.T) {
	srv := catalogServer(t)
	defer srv.Close()

	vm := New(backend.New(srv.URL))
	loaded, err := vm.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, vm.Source())

	got := Project(loaded, Filter{Category: "food"})
	assert.Equal(t, []string{"a"}, ids(got))
	assert.Equal(t, ids(got), ids(vm.ApplyFilter(Filter{Category: "food"})))
}

func TestServerSearchTracksSource(t *testing.T) {
	srv := catalogServer(t)
	defer srv.Close()

	vm := New(backend.New(srv.URL))
	_, err := vm.Load(context.Background())
	require.NoError(t, err)
	found, err := vm.Search(context.Background(), "momo")
	require.NoError(t, err)

	assert.Equal(t, []string{"c"}, ids(found))
	assert.Equal(t, SourceServer, vm.Source())
	assert.Equal(t, []string{"c"}, ids(vm.ApplyFilter(Filter{})))
}

func TestInvalidateDropsLateResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			close(started)
			<-release // hold the full-list fetch until the view is gone
			w.Write([]byte(`{"success":true,"data":[{"id":"a","name":"Aloo Chop","price":10}]}`))
		case "/products/search":
			w.Write([]byte(`{"success":true,"data":[{"id":"c","name":"Chicken Momo","price":13}]}`))
		}
	}))
	defer srv.Close()

	vm := New(backend.New(srv.URL))
	_, err := vm.Search(context.Background(), "momo")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, loadErr := vm.Load(context.Background())
		done <- loadErr
	}()
	<-started

	vm.Invalidate() // the "unmount"
	close(release)
	require.NoError(t, <-done)

	// The late full-list result was dropped; the search results survive.
	assert.Equal(t, SourceServer, vm.Source())
	assert.Equal(t, []string{"c"}, ids(vm.ApplyFilter(Filter{})))
}
