package units

import (
	"fmt"
	"math"
)

// MeasureUnit is a unit of one physical quantity. A value v in this unit is
// v*Factor + Offset in the quantity's reference unit. Only temperature units
// carry an Offset.
type MeasureUnit struct {
	Name     string
	Quantity PhysicalQuantity
	Factor   float64
	Offset   float64
}

func (mu MeasureUnit) String() string { return mu.Name }

// Linear reports whether the unit converts by factor alone.
func (mu MeasureUnit) Linear() bool { return mu.Offset == 0 }

func (mu MeasureUnit) toRef(v float64) float64   { return v*mu.Factor + mu.Offset }
func (mu MeasureUnit) fromRef(v float64) float64 { return (v - mu.Offset) / mu.Factor }

// unitTable lists the known units per quantity. The first entry of each
// quantity is its reference unit.
var unitTable = [numQuantities][]MeasureUnit{
	Adimensional: {{Name: "adim", Factor: 1}},
	Length: {
		{Name: "m", Factor: 1},
		{Name: "mm", Factor: 1e-3},
		{Name: "cm", Factor: 1e-2},
		{Name: "km", Factor: 1e3},
		{Name: "in", Factor: 0.0254},
		{Name: "ft", Factor: 0.3048},
	},
	Length2: {
		{Name: "m2", Factor: 1},
		{Name: "cm2", Factor: 1e-4},
		{Name: "mm2", Factor: 1e-6},
	},
	Mass: {
		{Name: "kg", Factor: 1},
		{Name: "g", Factor: 1e-3},
		{Name: "t", Factor: 1e3},
		{Name: "lb", Factor: 0.45359237},
	},
	Time: {
		{Name: "sec", Factor: 1},
		{Name: "ms", Factor: 1e-3},
		{Name: "min", Factor: 60},
		{Name: "hour", Factor: 3600},
	},
	ElectricCurrent: {
		{Name: "A", Factor: 1},
		{Name: "mA", Factor: 1e-3},
	},
	Temperature: {
		{Name: "K", Factor: 1},
		{Name: "C", Factor: 1, Offset: 273.15},
		{Name: "F", Factor: 5.0 / 9.0, Offset: 459.67 * 5.0 / 9.0},
	},
	AmountOfSubstance: {{Name: "mol", Factor: 1}},
	LuminousIntensity: {{Name: "cd", Factor: 1}},
	PlaneAngle: {
		{Name: "rad", Factor: 1},
		{Name: "deg", Factor: math.Pi / 180},
		{Name: "grad", Factor: math.Pi / 200},
	},
	Pressure: {
		{Name: "Pa", Factor: 1},
		{Name: "kPa", Factor: 1e3},
		{Name: "bar", Factor: 1e5},
		{Name: "atm", Factor: 101325},
		{Name: "psi", Factor: 6894.757293168},
	},
	Acceleration: {
		{Name: "m_s2", Factor: 1},
		{Name: "ft_s2", Factor: 0.3048},
	},
	Force: {
		{Name: "N", Factor: 1},
		{Name: "kN", Factor: 1e3},
		{Name: "kgf", Factor: 9.80665},
		{Name: "lbf", Factor: 4.4482216152605},
	},
	Speed: {
		{Name: "m_s", Factor: 1},
		{Name: "km_h", Factor: 1 / 3.6},
		{Name: "mph", Factor: 0.44704},
	},
	Energy: {
		{Name: "J", Factor: 1},
		{Name: "kJ", Factor: 1e3},
		{Name: "kWh", Factor: 3.6e6},
		{Name: "cal", Factor: 4.184},
	},
	Power: {
		{Name: "W", Factor: 1},
		{Name: "kW", Factor: 1e3},
		{Name: "hp", Factor: 745.69987158227022},
	},
	ElectricalConductance: {
		{Name: "S", Factor: 1},
		{Name: "mS", Factor: 1e-3},
	},
	ElectricalConductivity: {
		{Name: "S_m", Factor: 1},
		{Name: "mS_cm", Factor: 0.1},
	},
	Turbidity: {
		{Name: "FNU", Factor: 1},
		{Name: "NTU", Factor: 1},
	},
}

func init() {
	for q := range unitTable {
		for i := range unitTable[q] {
			unitTable[q][i].Quantity = PhysicalQuantity(q)
		}
	}
}

// Units returns the known units of q, reference unit first.
func Units(q PhysicalQuantity) []MeasureUnit {
	if !q.Valid() {
		return nil
	}
	out := make([]MeasureUnit, len(unitTable[q]))
	copy(out, unitTable[q])
	return out
}

// LookupUnit finds a unit of q by exact name.
func LookupUnit(q PhysicalQuantity, name string) (MeasureUnit, error) {
	if !q.Valid() {
		return MeasureUnit{}, fmt.Errorf("units: %s: %w", q, ErrUnknownQuantity)
	}
	for _, mu := range unitTable[q] {
		if mu.Name == name {
			return mu, nil
		}
	}
	return MeasureUnit{}, fmt.Errorf("units: %s %q: %w", q, name, ErrUnknownUnit)
}

// Lookup resolves a (quantity name, unit name) pair.
func Lookup(pqName, muName string) (MeasureUnit, error) {
	q, err := ParsePhysicalQuantity(pqName)
	if err != nil {
		return MeasureUnit{}, err
	}
	return LookupUnit(q, muName)
}

// ConvertFactor returns k such that a value in from times k is the value in
// to. Only linear units have such a factor.
func ConvertFactor(from, to MeasureUnit) (float64, error) {
	if from.Quantity != to.Quantity {
		return 0, fmt.Errorf("units: %s to %s: %w", from.Quantity, to.Quantity, ErrQuantityMismatch)
	}
	if !from.Linear() || !to.Linear() {
		return 0, fmt.Errorf("units: %s to %s: no linear factor", from.Name, to.Name)
	}
	return from.Factor / to.Factor, nil
}

// Convert converts an absolute value, honouring temperature offsets.
func Convert(value float64, from, to MeasureUnit) (float64, error) {
	if from.Quantity != to.Quantity {
		return 0, fmt.Errorf("units: %s to %s: %w", from.Quantity, to.Quantity, ErrQuantityMismatch)
	}
	return to.fromRef(from.toRef(value)), nil
}

// ConvertDelta converts a difference between two values. Offsets cancel, so
// only the factors apply.
func ConvertDelta(delta float64, from, to MeasureUnit) (float64, error) {
	if from.Quantity != to.Quantity {
		return 0, fmt.Errorf("units: %s to %s: %w", from.Quantity, to.Quantity, ErrQuantityMismatch)
	}
	return delta * from.Factor / to.Factor, nil
}
