package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/api"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/models"
)

func reportAPIError(action string, err error) {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		log.Printf("%s failed: service unreachable", action)
	case errors.Is(err, api.ErrUnauthorized):
		log.Printf("%s failed: session expired, please log in again", action)
	default:
		log.Printf("%s failed: %s", action, err.Error())
	}
}

// Plan prompts for origin and destination coordinates and prints the route
// options the planner returns.
func (a *App) Plan(ctx context.Context) error {
	oLat, oLon, err := GetCoordinates(a.reader, "Enter origin", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	dLat, dLon, err := GetCoordinates(a.reader, "Enter destination", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	routes, err := a.transitService.PlanRoute(ctx,
		models.Coordinates{Latitude: oLat, Longitude: oLon},
		models.Coordinates{Latitude: dLat, Longitude: dLon},
	)
	if err != nil {
		reportAPIError("Route planning", err)
		return err
	}

	if len(routes) == 0 {
		fmt.Println("No routes found")
		return nil
	}
	for _, r := range routes {
		express := ""
		if r.IsExpress {
			express = " [express]"
		}
		fmt.Printf("%s %s%s — %.1f km, ~%d min, R%.2f, %d stops\n",
			r.RouteNumber, r.Name, express, r.TotalDistance, r.EstimatedDuration, r.Fare, len(r.Stops))
	}
	return nil
}

// Stops prompts for a location and lists the bus stops around it.
func (a *App) Stops(ctx context.Context) error {
	lat, lon, err := GetCoordinates(a.reader, "Enter location", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	stops, err := a.transitService.NearbyStops(ctx, models.Coordinates{Latitude: lat, Longitude: lon})
	if err != nil {
		reportAPIError("Stop lookup", err)
		return err
	}

	if len(stops) == 0 {
		fmt.Println("No stops nearby")
		return nil
	}
	for _, s := range stops {
		fmt.Printf("%s (%.0f m) — routes: %v\n", s.Name, s.Distance, s.RouteNumbers)
	}
	return nil
}

// Schedules lists upcoming departures.
func (a *App) Schedules(ctx context.Context) error {
	schedules, err := a.transitService.BusSchedules(ctx)
	if err != nil {
		reportAPIError("Schedule lookup", err)
		return err
	}

	if len(schedules) == 0 {
		fmt.Println("No departures scheduled")
		return nil
	}
	for _, s := range schedules {
		fmt.Printf("%s  bus %s  route %s %s\n",
			s.DepartureTime, s.BusNumber, s.Route.RouteNumber, s.Route.Name)
	}
	return nil
}

// Track polls the live bus-location feed and prints each refresh until the
// user interrupts with Ctrl-C.
func (a *App) Track(ctx context.Context) error {
	fmt.Println("Tracking buses, press Ctrl-C to stop")

	watchCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	a.transitService.WatchBusLocations(watchCtx, a.config.PollInterval, func(buses []models.BusLocation, err error) {
		if err != nil {
			reportAPIError("Bus tracking", err)
			return
		}
		for _, b := range buses {
			fmt.Printf("bus %s route %s at %.5f,%.5f heading %.0f°\n",
				b.BusNumber, b.RouteNumber, b.Coordinates.Latitude, b.Coordinates.Longitude, b.Heading)
		}
	})

	fmt.Println("Stopped tracking")
	return nil
}

// Wallet prints the balance and the most recent transactions.
func (a *App) Wallet(ctx context.Context) error {
	w, err := a.transitService.Wallet(ctx)
	if err != nil {
		reportAPIError("Wallet lookup", err)
		return err
	}

	fmt.Printf("Balance: %s %.2f\n", w.Currency, w.Balance)
	for _, t := range w.Transactions {
		fmt.Printf("%s  %-16s %8.2f  %s\n", t.Date, t.Type, t.Amount, t.Status)
	}
	return nil
}

// TopUp prompts for an amount and payment method and credits the wallet.
func (a *App) TopUp(ctx context.Context) error {
	amount, err := GetFloat(a.reader, "Enter amount (R)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	method, err := getSimpleText(a.reader, "Enter payment method (card/eft)", os.Stdout)
	if err != nil {
		return err
	}

	w, err := a.transitService.TopUp(ctx, amount, method)
	if err != nil {
		reportAPIError("Top-up", err)
		return err
	}

	fmt.Printf("Top-up successful. New balance: %s %.2f\n", w.Currency, w.Balance)
	return nil
}
