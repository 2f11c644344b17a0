package dto

type StationRequest struct {
	Name string `json:"name"`
}

type EdgeRequest struct {
	Name              string `json:"name"`
	StationA          string `json:"station_a"`
	StationB          string `json:"station_b"`
	TravelTimeMinutes uint   `json:"travel_time_minutes"`
}

type TrainRequest struct {
	Name       string `json:"name"`
	CapacityKg uint   `json:"capacity_kg"`
	Location   string `json:"location"`
}

type PackageRequest struct {
	Name        string `json:"name"`
	WeightKg    uint   `json:"weight_kg"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type CreatedResponse struct {
	Name string `json:"name"`
}
