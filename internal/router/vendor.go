package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbasket/gateway/pkg/events"
	"github.com/mealbasket/gateway/pkg/global"
	"github.com/mealbasket/gateway/pkg/models"
)

// Vendor routes run behind RequireRole(VENDOR), so the session is present and
// every call is scoped to its vendor identity. The backend's echo is returned
// as-is; nothing is merged with local state.

func (a *API) VendorProfile(c *gin.Context) {
	sess := currentSession(c)
	profile, err := a.Backend.VendorProfile(c.Request.Context(), sess.Token, sess.UserID)
	if err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(profile))
}

func (a *API) ListVendorProducts(c *gin.Context) {
	sess := currentSession(c)
	products, err := a.Backend.VendorProducts(c.Request.Context(), sess.Token, sess.UserID)
	if err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func (a *API) CreateVendorProduct(c *gin.Context) {
	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	sess := currentSession(c)
	created, err := a.Backend.CreateVendorProduct(c.Request.Context(), sess.Token, sess.UserID, draft)
	if err != nil {
		a.writeBackendError(c, err)
		return
	}

	a.Bus.Publish(events.Event{
		Type:      events.ProductAdded,
		VendorID:  sess.UserID,
		ProductID: created.ID,
		Product:   created,
	})
	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}

func (a *API) UpdateVendorProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	sess := currentSession(c)
	updated, err := a.Backend.UpdateVendorProduct(c.Request.Context(), sess.Token, sess.UserID,
		c.Param("productId"), patch)
	if err != nil {
		a.writeBackendError(c, err)
		return
	}

	a.Bus.Publish(events.Event{
		Type:      events.ProductUpdated,
		VendorID:  sess.UserID,
		ProductID: updated.ID,
		Product:   updated,
	})
	c.JSON(http.StatusOK, global.SuccessResponse(updated))
}

// DeleteVendorProduct trusts that the UI confirmed intent; the destructive
// action itself is not re-confirmed here.
func (a *API) DeleteVendorProduct(c *gin.Context) {
	sess := currentSession(c)
	productID := c.Param("productId")

	if err := a.Backend.DeleteVendorProduct(c.Request.Context(), sess.Token, sess.UserID, productID); err != nil {
		a.writeBackendError(c, err)
		return
	}

	a.Bus.Publish(events.Event{
		Type:      events.ProductDeleted,
		VendorID:  sess.UserID,
		ProductID: productID,
	})
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{
		"deleted": productID,
	}))
}
