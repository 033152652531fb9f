package valueobject

// IrrigationType identifies how a farm is watered.
type IrrigationType string

const (
	IrrigationDrip      IrrigationType = "drip"
	IrrigationSprinkler IrrigationType = "sprinkler"
	IrrigationFlood     IrrigationType = "flood"
	IrrigationRainfed   IrrigationType = "rainfed"
)

// IsEfficient reports whether the method is a water-efficient one.
func (t IrrigationType) IsEfficient() bool {
	return t == IrrigationDrip || t == IrrigationSprinkler
}

// Valid reports whether t is a known irrigation type.
func (t IrrigationType) Valid() bool {
	switch t {
	case IrrigationDrip, IrrigationSprinkler, IrrigationFlood, IrrigationRainfed:
		return true
	}
	return false
}

// RainfallDependency describes how much a farm relies on rain.
type RainfallDependency string

const (
	RainfallRainfed   RainfallDependency = "rainfed"
	RainfallIrrigated RainfallDependency = "irrigated"
	RainfallMixed     RainfallDependency = "mixed"
)

// Valid reports whether d is a known rainfall dependency.
func (d RainfallDependency) Valid() bool {
	switch d {
	case RainfallRainfed, RainfallIrrigated, RainfallMixed:
		return true
	}
	return false
}

// LandType is the tenure under which the farmer holds land.
type LandType string

const (
	LandOwned LandType = "owned"
	LandLease LandType = "lease"
)

// Valid reports whether l is a known land type.
func (l LandType) Valid() bool {
	return l == LandOwned || l == LandLease
}
