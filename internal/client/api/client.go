package api

import (
	"context"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/models"
)

// Registration is the payload of the /auth/register endpoint. The caller is
// responsible for checking that Password equals PasswordConfirmation before
// submitting; the server re-validates in any case.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	PhoneNumber          string `json:"phone_number"`
	PreferredLanguage    string `json:"preferred_language,omitempty"`
}

// RoutePlanRequest asks the server for route options between two points.
// Radius is the stop search radius in kilometres around each endpoint.
type RoutePlanRequest struct {
	Origin      models.Coordinates `json:"origin"`
	Destination models.Coordinates `json:"destination"`
	Radius      float64            `json:"radius"`
}

// Client is the API surface the rest of the application depends on.
//
// Login and Register return the user profile together with the issued bearer
// credential; the caller decides whether to attach it via SetCredential.
// Logout is best-effort: any HTTP response counts as success.
type Client interface {
	Close() error

	Login(ctx context.Context, email, password string) (*models.UserProfile, string, error)
	Register(ctx context.Context, reg Registration) (*models.UserProfile, string, error)
	Logout(ctx context.Context) error

	// SetCredential makes every subsequent request carry the bearer token.
	// ClearCredential removes it.
	SetCredential(token string)
	ClearCredential()

	PlanRoute(ctx context.Context, req RoutePlanRequest) ([]models.RouteOption, error)
	NearbyStops(ctx context.Context, at models.Coordinates, radius float64) ([]models.Stop, error)
	BusSchedules(ctx context.Context) ([]models.Schedule, error)
	BusLocations(ctx context.Context) ([]models.BusLocation, error)
	Wallet(ctx context.Context) (*models.Wallet, error)
	TopUp(ctx context.Context, amount float64, paymentMethod string) (*models.Wallet, error)
}
