package services

import (
	"context"
	"time"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/api"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/models"
)

// TransitService exposes the read-mostly transit resources. It is a thin
// pass-through: the server does the route planning and distance math, the
// client only renders what comes back.
type TransitService interface {
	PlanRoute(ctx context.Context, origin, destination models.Coordinates) ([]models.RouteOption, error)
	NearbyStops(ctx context.Context, at models.Coordinates) ([]models.Stop, error)
	BusSchedules(ctx context.Context) ([]models.Schedule, error)
	BusLocations(ctx context.Context) ([]models.BusLocation, error)
	Wallet(ctx context.Context) (*models.Wallet, error)
	TopUp(ctx context.Context, amount float64, paymentMethod string) (*models.Wallet, error)
	WatchBusLocations(ctx context.Context, interval time.Duration, fn func([]models.BusLocation, error))
}

type transitService struct {
	client     api.Client
	planRadius float64
	stopRadius float64
}

// NewTransitService constructs a TransitService. planRadius (kilometres) is
// sent with route-planning requests; stopRadius (metres) with nearby-stop
// queries.
func NewTransitService(client api.Client, planRadius, stopRadius float64) TransitService {
	return &transitService{client: client, planRadius: planRadius, stopRadius: stopRadius}
}

func (t *transitService) PlanRoute(ctx context.Context, origin, destination models.Coordinates) ([]models.RouteOption, error) {
	return t.client.PlanRoute(ctx, api.RoutePlanRequest{
		Origin:      origin,
		Destination: destination,
		Radius:      t.planRadius,
	})
}

func (t *transitService) NearbyStops(ctx context.Context, at models.Coordinates) ([]models.Stop, error) {
	return t.client.NearbyStops(ctx, at, t.stopRadius)
}

func (t *transitService) BusSchedules(ctx context.Context) ([]models.Schedule, error) {
	return t.client.BusSchedules(ctx)
}

func (t *transitService) BusLocations(ctx context.Context) ([]models.BusLocation, error) {
	return t.client.BusLocations(ctx)
}

func (t *transitService) Wallet(ctx context.Context) (*models.Wallet, error) {
	return t.client.Wallet(ctx)
}

func (t *transitService) TopUp(ctx context.Context, amount float64, paymentMethod string) (*models.Wallet, error) {
	return t.client.TopUp(ctx, amount, paymentMethod)
}

// WatchBusLocations polls the live-location feed every interval and passes
// each result to fn until ctx is cancelled. The first fetch happens
// immediately, not after the first tick.
func (t *transitService) WatchBusLocations(ctx context.Context, interval time.Duration, fn func([]models.BusLocation, error)) {
	fetch := func() {
		locations, err := t.client.BusLocations(ctx)
		fn(locations, err)
	}

	fetch()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fetch()
		case <-ctx.Done():
			return
		}
	}
}
