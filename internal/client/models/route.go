package models

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RouteStop is a named stop on a planned route.
type RouteStop struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
}

// RouteOption is one candidate route returned by the route planner.
// Distances are kilometres, durations minutes, fares rand.
type RouteOption struct {
	RouteID           int         `json:"route_id"`
	RouteNumber       string      `json:"route_number"`
	Name              string      `json:"name"`
	TotalDistance     float64     `json:"total_distance"`
	EstimatedDuration int         `json:"estimated_duration"`
	Fare              float64     `json:"fare"`
	Stops             []RouteStop `json:"stops"`
	IsExpress         bool        `json:"is_express"`
}
