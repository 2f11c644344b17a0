package scenario

// StationSpec declares one station.
type StationSpec struct {
	Name string `yaml:"name" validate:"required"`
}

// EdgeSpec declares one undirected connection.
type EdgeSpec struct {
	Name     string `yaml:"name" validate:"required"`
	StationA string `yaml:"station_a" validate:"required"`
	StationB string `yaml:"station_b" validate:"required"`
	Minutes  uint   `yaml:"minutes" validate:"gt=0"`
}

// TrainSpec declares one train and its starting station.
type TrainSpec struct {
	Name     string `yaml:"name" validate:"required"`
	Capacity uint   `yaml:"capacity" validate:"gt=0"`
	Location string `yaml:"location" validate:"required"`
}

// PackageSpec declares one package.
type PackageSpec struct {
	Name        string `yaml:"name" validate:"required"`
	Weight      uint   `yaml:"weight" validate:"gt=0"`
	Origin      string `yaml:"origin" validate:"required"`
	Destination string `yaml:"destination" validate:"required"`
}

// Scenario is a full world definition loaded from a YAML file.
type Scenario struct {
	Stations []StationSpec `yaml:"stations" validate:"required,min=1"`
	Edges    []EdgeSpec    `yaml:"edges"`
	Trains   []TrainSpec   `yaml:"trains"`
	Packages []PackageSpec `yaml:"packages"`
}
