package session

import (
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/models"
)

// State is a snapshot of the current session.
//
// Restoring is true only while the startup restore is reading persisted
// data; it never becomes true again for the lifetime of the process.
type State struct {
	Profile    *models.UserProfile
	Credential string
	Restoring  bool
}

// IsAuthenticated reports whether a user is signed in. It is derived from
// the profile, never cached.
func (s State) IsAuthenticated() bool {
	return s.Profile != nil
}
