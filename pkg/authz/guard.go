// Package authz decides whether a session may enter a route subtree.
package authz

import "github.com/mealbasket/gateway/pkg/models"

const LoginPath = "/login"

// Outcome of an authorization check.
type Outcome int

const (
	// Pending means session determination has not finished; the caller
	// should render a neutral state and make no routing decision yet.
	Pending Outcome = iota
	Allow
	Redirect
)

type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// State is what the guard knows about the session at decision time. Known is
// false while the persisted session is still being determined.
type State struct {
	Known   bool
	Session *models.Session
}

// Authorize is a pure function from session state and the route's required
// role to a decision. requiredRole == "" means the route is public and is
// always allowed, whatever the session state.
//
// A wrong-role session is sent to its own role's home, never to the home of
// the role the route wanted.
func Authorize(state State, requiredRole models.Role) Decision {
	if requiredRole == "" {
		return Decision{Outcome: Allow}
	}
	if !state.Known {
		return Decision{Outcome: Pending}
	}
	if state.Session == nil {
		return Decision{Outcome: Redirect, RedirectTo: LoginPath}
	}
	if state.Session.Role != requiredRole {
		return Decision{Outcome: Redirect, RedirectTo: state.Session.Role.HomePath()}
	}
	return Decision{Outcome: Allow}
}
