package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealbasket/gateway/pkg/authz"
	"github.com/mealbasket/gateway/pkg/global"
	"github.com/mealbasket/gateway/pkg/models"
)

const (
	contextCookie = "mb_context"
	cookieMaxAge  = 7 * 24 * 60 * 60

	ctxKeyContextID = "contextID"
	ctxKeySession   = "sessionState"
)

// ContextMiddleware pins every caller to a browser-context id, minting one
// when the cookie is missing. Cart, favorites and session records all hang
// off this id.
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(contextCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(contextCookie, id, cookieMaxAge, "/", "", false, true)
		}
		c.Set(ctxKeyContextID, id)
		c.Next()
	}
}

func contextID(c *gin.Context) string {
	return c.GetString(ctxKeyContextID)
}

// SessionMiddleware resolves the persisted session once per request. A store
// failure leaves the state unknown rather than pretending the caller is
// logged out.
func (a *API) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := authz.State{}
		sess, err := a.Sessions.Get(c.Request.Context(), contextID(c))
		if err == nil {
			state.Known = true
			state.Session = sess
		}
		c.Set(ctxKeySession, state)
		c.Next()
	}
}

func sessionState(c *gin.Context) authz.State {
	if v, ok := c.Get(ctxKeySession); ok {
		if state, ok := v.(authz.State); ok {
			return state
		}
	}
	return authz.State{}
}

// currentSession returns the session or nil; handlers behind RequireRole can
// rely on it being non-nil.
func currentSession(c *gin.Context) *models.Session {
	return sessionState(c).Session
}

// RequireRole gates a route subtree on the session's role.
func (a *API) RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := authz.Authorize(sessionState(c), role)
		switch decision.Outcome {
		case authz.Pending:
			// Session determination failed mid-flight; make no
			// routing decision.
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				global.ErrorResponse("Session state unavailable, try again", nil))
		case authz.Redirect:
			status := http.StatusForbidden
			if decision.RedirectTo == authz.LoginPath {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status,
				global.RedirectResponse("Not allowed here", decision.RedirectTo))
		default:
			c.Next()
		}
	}
}
