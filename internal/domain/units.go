package domain

// Minutes is a whole-minute duration on the simulation clock.
type Minutes uint

// Kilograms is a whole-kilogram weight or capacity.
type Kilograms uint
