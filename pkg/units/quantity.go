// Package units holds physical quantities, their measure units and the
// per-quantity default tolerance registry used to pick comparison
// tolerances for measured values.
package units

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownQuantity  = errors.New("units: unknown physical quantity")
	ErrUnknownUnit      = errors.New("units: unknown measure unit")
	ErrQuantityMismatch = errors.New("units: physical quantity mismatch")
)

// PhysicalQuantity identifies what a measure unit measures.
type PhysicalQuantity int

const (
	Adimensional PhysicalQuantity = iota
	Length
	Length2
	Mass
	Time
	ElectricCurrent
	Temperature
	AmountOfSubstance
	LuminousIntensity
	PlaneAngle
	Pressure
	Acceleration
	Force
	Speed
	Energy
	Power
	ElectricalConductance
	ElectricalConductivity
	Turbidity

	numQuantities
)

var quantityNames = [numQuantities]string{
	Adimensional:           "Adimensional",
	Length:                 "Length",
	Length2:                "Length2",
	Mass:                   "Mass",
	Time:                   "Time",
	ElectricCurrent:        "ElectricCurrent",
	Temperature:            "Temperature",
	AmountOfSubstance:      "AmountOfSubstance",
	LuminousIntensity:      "LuminousIntensity",
	PlaneAngle:             "PlaneAngle",
	Pressure:               "Pressure",
	Acceleration:           "Acceleration",
	Force:                  "Force",
	Speed:                  "Speed",
	Energy:                 "Energy",
	Power:                  "Power",
	ElectricalConductance:  "ElectricalConductance",
	ElectricalConductivity: "ElectricalConductivity",
	Turbidity:              "Turbidity",
}

func (q PhysicalQuantity) String() string {
	if q < 0 || q >= numQuantities {
		return fmt.Sprintf("PhysicalQuantity(%d)", int(q))
	}
	return quantityNames[q]
}

// Valid reports whether q is one of the declared quantities.
func (q PhysicalQuantity) Valid() bool {
	return q >= 0 && q < numQuantities
}

// Quantities lists every physical quantity in declaration order.
func Quantities() []PhysicalQuantity {
	out := make([]PhysicalQuantity, numQuantities)
	for i := range out {
		out[i] = PhysicalQuantity(i)
	}
	return out
}

// ParsePhysicalQuantity resolves a quantity by name, ignoring case.
func ParsePhysicalQuantity(name string) (PhysicalQuantity, error) {
	for i, n := range quantityNames {
		if strings.EqualFold(n, name) {
			return PhysicalQuantity(i), nil
		}
	}
	return 0, fmt.Errorf("units: %q: %w", name, ErrUnknownQuantity)
}
