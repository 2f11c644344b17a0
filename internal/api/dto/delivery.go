package dto

type PackageResponse struct {
	Name        string `json:"name"`
	WeightKg    uint   `json:"weight_kg"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	// Station or Train is set depending on the status.
	Station string `json:"station,omitempty"`
	Train   string `json:"train,omitempty"`
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

type DeliveryResponse struct {
	TotalMinutes uint     `json:"total_minutes"`
	Report       []string `json:"report"`
}
