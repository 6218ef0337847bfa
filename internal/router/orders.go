package router

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbasket/gateway/pkg/global"
	"github.com/mealbasket/gateway/pkg/models"
)

// Orders, meal plans and contact messages are backend-owned; the gateway
// forwards them without interpreting the payloads. The one piece of gateway
// state involved is the cart, which empties on a successful checkout.

func (a *API) ListOrders(c *gin.Context) {
	sess := currentSession(c)
	data, err := a.Backend.GetRaw(c.Request.Context(), sess.Token, "/orders")
	if err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(data))
}

// Checkout forwards the order and clears the cart once the backend accepts
// it. A rejected or failed order leaves the cart exactly as it was.
func (a *API) Checkout(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", nil))
		return
	}

	sess := currentSession(c)
	ctx := c.Request.Context()
	data, err := a.Backend.PostRaw(ctx, sess.Token, "/orders", body)
	if err != nil {
		a.writeBackendError(c, err)
		return
	}

	if err := a.Carts.Clear(ctx, contextID(c)); err != nil {
		// The order went through; an uncleared cart is an annoyance,
		// not a failure.
		c.JSON(http.StatusCreated, global.APIResponse{
			Success: true,
			Data:    data,
			Message: "Order placed, but the cart could not be cleared",
		})
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(data))
}

func (a *API) ListMealPlans(c *gin.Context) {
	sess := currentSession(c)
	data, err := a.Backend.GetRaw(c.Request.Context(), sess.Token, "/meal-plans/user")
	if err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(data))
}

func (a *API) CreateMealPlan(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", nil))
		return
	}

	sess := currentSession(c)
	data, err := a.Backend.PostRaw(c.Request.Context(), sess.Token, "/meal-plans", body)
	if err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(data))
}

func (a *API) SendContactMessage(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid message data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if err := a.Backend.SendContactMessage(c.Request.Context(), msg); err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{
		"message": "Message sent",
	}))
}
