package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbasket/gateway/pkg/catalog"
	"github.com/mealbasket/gateway/pkg/global"
	"github.com/mealbasket/gateway/pkg/models"
)

// BrowseCatalog loads the product list and projects the requested filter over
// it. When server=true the search term is delegated to the backend's search
// endpoint instead of filtered locally; the response says which mode produced
// the list.
//
// The projection runs over this request's own fetched snapshot, never over
// the shared view-model state, so concurrent browsers cannot see each other's
// search results.
func (a *API) BrowseCatalog(c *gin.Context) {
	ctx := c.Request.Context()
	search := c.Query("search")
	serverSearch := c.Query("server") == "true" && search != ""

	var (
		products []models.Product
		source   = catalog.SourceLocal
		err      error
	)
	if serverSearch {
		source = catalog.SourceServer
		products, err = a.Catalog.Search(ctx, search)
	} else {
		products, err = a.Catalog.Load(ctx)
	}
	if err != nil {
		a.writeBackendError(c, err)
		return
	}

	filter := catalog.Filter{
		Category: c.Query("category"),
		Sort:     catalog.SortKey(c.Query("sort")),
	}
	if !serverSearch {
		filter.Search = search
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"source":   source,
		"products": catalog.Project(products, filter),
	}))
}

func (a *API) GetProduct(c *gin.Context) {
	product, err := a.Backend.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}
