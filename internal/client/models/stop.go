package models

// Stop is a bus stop near a queried location. Distance is metres from the
// query point.
type Stop struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Coordinates  Coordinates `json:"coordinates"`
	RouteNumbers []string    `json:"route_numbers"`
	Distance     float64     `json:"distance"`
}
