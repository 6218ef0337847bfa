package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbasket/gateway/pkg/adminview"
	"github.com/mealbasket/gateway/pkg/backend"
	"github.com/mealbasket/gateway/pkg/cart"
	"github.com/mealbasket/gateway/pkg/catalog"
	"github.com/mealbasket/gateway/pkg/events"
	"github.com/mealbasket/gateway/pkg/favorites"
	"github.com/mealbasket/gateway/pkg/global"
	"github.com/mealbasket/gateway/pkg/session"
)

// API carries every dependency the handlers need. Stores are constructed in
// main and injected here; there are no package-level singletons.
type API struct {
	Backend   *backend.Client
	Sessions  *session.Store
	Carts     *cart.Store
	Favorites *favorites.Store
	Catalog   *catalog.ViewModel
	AdminView *adminview.View
	Bus       *events.Bus
}

func NewAPI(client *backend.Client, sessions *session.Store, carts *cart.Store,
	favs *favorites.Store, bus *events.Bus) *API {
	return &API{
		Backend:   client,
		Sessions:  sessions,
		Carts:     carts,
		Favorites: favs,
		Catalog:   catalog.New(client),
		AdminView: adminview.New(client, bus),
		Bus:       bus,
	}
}

// writeBackendError translates a backend.Error into the gateway's envelope.
// An upstream 401 tears the local session down everywhere, then points the
// caller back at the login screen.
func (a *API) writeBackendError(c *gin.Context, err error) {
	switch {
	case backend.IsUnauthorized(err):
		a.teardown(c)
		c.JSON(http.StatusUnauthorized, global.RedirectResponse("Session is no longer valid", "/login"))
	case backend.IsTransport(err):
		c.JSON(http.StatusBadGateway, global.ErrorResponse(
			"Cannot connect to server. Please check if the backend is running.", nil))
	case backend.IsConflict(err):
		c.JSON(http.StatusConflict, global.ErrorResponse(messageOf(err, "Resource already exists"), nil))
	case backend.IsNotFound(err):
		c.JSON(http.StatusNotFound, global.ErrorResponse(messageOf(err, "Not found"), nil))
	case backend.IsServer(err):
		c.JSON(http.StatusBadGateway, global.ErrorResponse("Server error. Please try again later.", nil))
	default:
		c.JSON(http.StatusBadRequest, global.ErrorResponse(messageOf(err, "Request failed"), nil))
	}
}

// teardown clears session, cart and favorites for the calling context.
func (a *API) teardown(c *gin.Context) {
	ctx := c.Request.Context()
	contextID := contextID(c)

	if err := a.Sessions.Clear(ctx, contextID); err != nil {
		log.Printf("Warning: failed to clear session for context %s: %v", contextID, err)
	}
	if err := a.Carts.Clear(ctx, contextID); err != nil {
		log.Printf("Warning: failed to clear cart for context %s: %v", contextID, err)
	}
	if err := a.Favorites.Clear(ctx, contextID); err != nil {
		log.Printf("Warning: failed to clear favorites for context %s: %v", contextID, err)
	}
}

func messageOf(err error, fallback string) string {
	var be *backend.Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
