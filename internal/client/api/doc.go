// Package api contains the Tshwane Transit API client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) to talk to the
//     backend: Login/Register/Logout for the session lifecycle, and the
//     read-mostly transit resources (route planning, nearby stops, schedules,
//     live bus locations, wallet).
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that manages
//     default headers, attaches the bearer credential to every outbound
//     request once set, and maps transport failures to sentinel errors.
//
// # Error Handling
//
// Unreachable-server conditions are exposed as ErrUnavailable and can be
// matched with errors.Is. Rejected sign-in/sign-up calls return *AuthError
// carrying the user-facing message extracted from the server's error payload.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package api
