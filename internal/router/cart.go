package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbasket/gateway/pkg/cart"
	"github.com/mealbasket/gateway/pkg/global"
	"github.com/mealbasket/gateway/pkg/models"
)

type cartView struct {
	Items     map[string]*cart.Item `json:"items"`
	ItemCount int                   `json:"item_count"`
	Total     string                `json:"total"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		Items:     c.Items,
		ItemCount: c.ItemCount(),
		Total:     c.Total().StringFixed(2),
	}
}

func (a *API) GetCart(c *gin.Context) {
	current, err := a.Carts.Load(c.Request.Context(), contextID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(viewOf(current)))
}

// AddToCart inserts the posted product, or bumps its quantity when it is
// already there. The cart is persisted before the response goes out.
func (a *API) AddToCart(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil || product.ID == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product data", []global.ValidationError{
			{Field: "id", Message: "Product id is required", Code: "required"},
		}))
		return
	}
	if product.Price < 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product data", []global.ValidationError{
			{Field: "price", Message: "Price must be non-negative", Code: "invalid"},
		}))
		return
	}

	ctx := c.Request.Context()
	current, err := a.Carts.Load(ctx, contextID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	current.Add(product)
	if err := a.Carts.Save(ctx, contextID(c), current); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(viewOf(current)))
}

type quantityDelta struct {
	Delta int `json:"delta" binding:"required"`
}

func (a *API) UpdateCartItem(c *gin.Context) {
	var req quantityDelta
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "delta", Message: "A non-zero quantity delta is required", Code: "required"},
		}))
		return
	}

	ctx := c.Request.Context()
	current, err := a.Carts.Load(ctx, contextID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	if _, err := current.SetQuantity(c.Param("productId"), req.Delta); err != nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Item not in cart", []global.ValidationError{
			{Field: "productId", Message: err.Error(), Code: "not_found"},
		}))
		return
	}
	if err := a.Carts.Save(ctx, contextID(c), current); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(viewOf(current)))
}

func (a *API) RemoveFromCart(c *gin.Context) {
	ctx := c.Request.Context()
	current, err := a.Carts.Load(ctx, contextID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	current.Remove(c.Param("productId"))
	if err := a.Carts.Save(ctx, contextID(c), current); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(viewOf(current)))
}

func (a *API) ClearCart(c *gin.Context) {
	if err := a.Carts.Clear(c.Request.Context(), contextID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to clear cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(viewOf(cart.New())))
}

func (a *API) GetFavorites(c *gin.Context) {
	favs, err := a.Favorites.Load(c.Request.Context(), contextID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load favorites", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(favs.List()))
}

// AddFavorite is idempotent: favoriting an already-favorited product changes
// nothing and says so.
func (a *API) AddFavorite(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil || product.ID == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product data", []global.ValidationError{
			{Field: "id", Message: "Product id is required", Code: "required"},
		}))
		return
	}

	ctx := c.Request.Context()
	favs, err := a.Favorites.Load(ctx, contextID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load favorites", nil))
		return
	}

	added := favs.Toggle(product)
	if added {
		if err := a.Favorites.Save(ctx, contextID(c), favs); err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save favorites", nil))
			return
		}
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"added":     added,
		"favorites": favs.List(),
	}))
}

func (a *API) RemoveFavorite(c *gin.Context) {
	ctx := c.Request.Context()
	favs, err := a.Favorites.Load(ctx, contextID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load favorites", nil))
		return
	}

	favs.Remove(c.Param("productId"))
	if err := a.Favorites.Save(ctx, contextID(c), favs); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save favorites", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(favs.List()))
}
