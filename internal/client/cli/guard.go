package cli

import (
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/session"
)

// RouteGroup identifies which area of the UI the user is currently in.
type RouteGroup string

const (
	// GroupAuth is the unauthenticated area (login/register screens).
	GroupAuth RouteGroup = "auth"
	// GroupTabs is the authenticated area (the main tab screens).
	GroupTabs RouteGroup = "tabs"
)

// Decision is the outcome of evaluating the navigation guard.
type Decision int

const (
	// DecisionWait: the session is still being restored; render nothing
	// decisive yet.
	DecisionWait Decision = iota
	// DecisionStay: the current area matches the session state.
	DecisionStay
	// DecisionToLogin: not authenticated but outside the auth area; force
	// navigation to the sign-in entry screen.
	DecisionToLogin
	// DecisionToHome: authenticated but still in the auth area; force
	// navigation to the main entry screen.
	DecisionToHome
)

// Redirect computes the navigation decision as a pure function of the
// session state and the current route group. It is evaluated reactively on
// every state change, never polled.
func Redirect(st session.State, current RouteGroup) Decision {
	if st.Restoring {
		return DecisionWait
	}
	if !st.IsAuthenticated() && current != GroupAuth {
		return DecisionToLogin
	}
	if st.IsAuthenticated() && current == GroupAuth {
		return DecisionToHome
	}
	return DecisionStay
}
