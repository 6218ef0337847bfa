package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbasket/gateway/pkg/events"
	"github.com/mealbasket/gateway/pkg/global"
)

// AdminOverview refreshes the aggregate view and returns the counts. On a
// partial fetch failure the previously displayed snapshot is returned
// alongside the error message, never a half-updated one.
func (a *API) AdminOverview(c *gin.Context) {
	sess := currentSession(c)
	snap, err := a.AdminView.Refresh(c.Request.Context(), sess.Token)
	if err != nil {
		previous := a.AdminView.Snapshot()
		c.JSON(http.StatusBadGateway, global.APIResponse{
			Success: false,
			Message: "Failed to refresh admin overview",
			Data:    previous,
		})
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(snap))
}

func (a *API) AdminUsers(c *gin.Context) {
	sess := currentSession(c)
	users, err := a.Backend.AdminUsers(c.Request.Context(), sess.Token)
	if err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(users))
}

func (a *API) AdminVendors(c *gin.Context) {
	sess := currentSession(c)
	vendors, err := a.Backend.AdminVendors(c.Request.Context(), sess.Token)
	if err != nil {
		a.writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(vendors))
}

func (a *API) AdminDeleteUser(c *gin.Context) {
	sess := currentSession(c)
	userID := c.Param("id")

	if err := a.Backend.DeleteUser(c.Request.Context(), sess.Token, userID); err != nil {
		a.writeBackendError(c, err)
		return
	}

	a.Bus.Publish(events.Event{Type: events.UserDeleted})
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{
		"deleted": userID,
	}))
}
