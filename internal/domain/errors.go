package domain

import "errors"

// Registration errors. All of them are raised synchronously while the world
// is being built; once registration succeeds the simulation itself never
// returns an error.
var (
	ErrDuplicateStation = errors.New("station already exists")
	ErrStationNotFound  = errors.New("station not found")
	ErrSameStation      = errors.New("edge endpoints are the same station")
	ErrDuplicateEdge    = errors.New("edge already exists")
	ErrDuplicateTrain   = errors.New("train already exists")
	ErrDuplicatePackage = errors.New("package already exists")
)
