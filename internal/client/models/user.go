// Package models defines the data types exchanged with the Tshwane Transit
// API and stored locally by the client.
package models

// UserProfile is the authenticated user's profile as returned by the API.
// It is replaced wholesale on every successful sign-in/sign-up and never
// mutated in place.
type UserProfile struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
}
