package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbasket/gateway/pkg/backend"
	"github.com/mealbasket/gateway/pkg/global"
	"github.com/mealbasket/gateway/pkg/models"
)

func (a *API) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK"}))
}

// CurrentSession reports what the guard knows: pending, anonymous, or the
// authenticated identity.
func (a *API) CurrentSession(c *gin.Context) {
	state := sessionState(c)
	if !state.Known {
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Session state unavailable, try again", nil))
		return
	}
	if state.Session == nil {
		c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
			"authenticated": false,
		}))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"authenticated": true,
		"user":          state.Session.User(),
		"home":          state.Session.Role.HomePath(),
	}))
}

// Login exchanges credentials upstream and, only on success, writes the
// session. Every failure path leaves this context unauthenticated.
func (a *API) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	result, err := a.Backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Any partial session state must not survive a failed login.
		if clearErr := a.Sessions.Clear(c.Request.Context(), contextID(c)); clearErr != nil {
			log.Printf("Warning: failed to clear session after failed login: %v", clearErr)
		}
		if backend.IsUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid email or password.", nil))
			return
		}
		a.writeBackendError(c, err)
		return
	}

	sess := &models.Session{
		UserID: result.ID,
		Name:   result.Name,
		Email:  result.Email,
		Role:   result.Role,
		Token:  result.Token,
	}
	if err := a.Sessions.Set(c.Request.Context(), contextID(c), sess); err != nil {
		log.Printf("Error persisting session for context %s: %v", contextID(c), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to persist session", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"user":     sess.User(),
		"role":     sess.Role,
		"redirect": sess.Role.HomePath(),
	}))
}

// Register creates a customer account. It never logs the caller in; the
// response tells them to do that themselves.
func (a *API) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Passwords do not match", []global.ValidationError{
			{Field: "confirm_password", Message: "Password confirmation must match", Code: "mismatch"},
		}))
		return
	}

	if err := a.Backend.RegisterCustomer(c.Request.Context(), req); err != nil {
		if backend.IsConflict(err) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "This email is already in use", Code: "duplicate_email"},
			}))
			return
		}
		a.writeBackendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]string{
		"message": "Registration successful. Please log in.",
	}))
}

func (a *API) RegisterVendor(c *gin.Context) {
	var req models.VendorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Passwords do not match", []global.ValidationError{
			{Field: "confirm_password", Message: "Password confirmation must match", Code: "mismatch"},
		}))
		return
	}

	if err := a.Backend.RegisterVendor(c.Request.Context(), req); err != nil {
		if backend.IsConflict(err) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "This email is already in use", Code: "duplicate_email"},
			}))
			return
		}
		a.writeBackendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]string{
		"message": "Vendor registration successful. Please log in.",
	}))
}

// Logout is best effort upstream and unconditional locally: whatever the
// backend says, the session, cart and favorites for this context are gone
// afterwards.
func (a *API) Logout(c *gin.Context) {
	if sess := currentSession(c); sess != nil {
		if err := a.Backend.Logout(c.Request.Context(), sess.Token); err != nil {
			log.Printf("Warning: backend logout failed, clearing local state anyway: %v", err)
		}
	}
	a.teardown(c)

	c.JSON(http.StatusOK, global.APIResponse{
		Success:  true,
		Redirect: "/login",
	})
}
