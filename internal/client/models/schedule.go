package models

// ScheduleRoute is the route summary embedded in a schedule entry.
type ScheduleRoute struct {
	RouteNumber       string      `json:"route_number"`
	Name              string      `json:"name"`
	Fare              string      `json:"fare"`
	Stops             []RouteStop `json:"stops"`
	EstimatedDuration int         `json:"estimated_duration"`
	IsExpress         bool        `json:"is_express"`
}

// Schedule is a single departure of a bus on a route.
type Schedule struct {
	ID            int           `json:"id"`
	Route         ScheduleRoute `json:"route"`
	DepartureTime string        `json:"departure_time"`
	BusNumber     string        `json:"bus_number"`
	Capacity      int           `json:"capacity"`
	IsExpress     bool          `json:"is_express"`
}

// BusLocation is the live position of a bus as reported by the tracking feed.
type BusLocation struct {
	BusNumber   string      `json:"bus_number"`
	RouteNumber string      `json:"route_number"`
	Coordinates Coordinates `json:"coordinates"`
	Heading     float64     `json:"heading"`
	UpdatedAt   string      `json:"updated_at"`
}
