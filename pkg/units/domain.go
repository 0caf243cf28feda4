package units

import (
	"fmt"
	"math"
)

// Domain is the registry of default tolerances, one slot per physical
// quantity. It is not safe for concurrent mutation.
type Domain struct {
	Adimensional           MeasureUnitWithDefaultTolerance
	Length                 MeasureUnitWithDefaultTolerance
	Length2                MeasureUnitWithDefaultTolerance
	Mass                   MeasureUnitWithDefaultTolerance
	Time                   MeasureUnitWithDefaultTolerance
	ElectricCurrent        MeasureUnitWithDefaultTolerance
	Temperature            MeasureUnitWithDefaultTolerance
	AmountOfSubstance      MeasureUnitWithDefaultTolerance
	LuminousIntensity      MeasureUnitWithDefaultTolerance
	PlaneAngle             MeasureUnitWithDefaultTolerance
	Pressure               MeasureUnitWithDefaultTolerance
	Acceleration           MeasureUnitWithDefaultTolerance
	Force                  MeasureUnitWithDefaultTolerance
	Speed                  MeasureUnitWithDefaultTolerance
	Energy                 MeasureUnitWithDefaultTolerance
	Power                  MeasureUnitWithDefaultTolerance
	ElectricalConductance  MeasureUnitWithDefaultTolerance
	ElectricalConductivity MeasureUnitWithDefaultTolerance
	Turbidity              MeasureUnitWithDefaultTolerance
}

// domainSlots maps each quantity to its Domain field.
var domainSlots = [numQuantities]func(d *Domain) *MeasureUnitWithDefaultTolerance{
	Adimensional:           func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Adimensional },
	Length:                 func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Length },
	Length2:                func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Length2 },
	Mass:                   func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Mass },
	Time:                   func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Time },
	ElectricCurrent:        func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.ElectricCurrent },
	Temperature:            func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Temperature },
	AmountOfSubstance:      func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.AmountOfSubstance },
	LuminousIntensity:      func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.LuminousIntensity },
	PlaneAngle:             func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.PlaneAngle },
	Pressure:               func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Pressure },
	Acceleration:           func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Acceleration },
	Force:                  func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Force },
	Speed:                  func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Speed },
	Energy:                 func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Energy },
	Power:                  func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Power },
	ElectricalConductance:  func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.ElectricalConductance },
	ElectricalConductivity: func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.ElectricalConductivity },
	Turbidity:              func(d *Domain) *MeasureUnitWithDefaultTolerance { return &d.Turbidity },
}

// defaultTolerances seeds NewDomain.
var defaultTolerances = [numQuantities]struct {
	unit string
	tol  float64
}{
	Adimensional:           {"adim", 0},
	Length:                 {"m", 1e-4},
	Length2:                {"m2", 1e-4},
	Mass:                   {"kg", 1e-4},
	Time:                   {"sec", 1e-1},
	ElectricCurrent:        {"A", 1e-9},
	Temperature:            {"C", 1e-1},
	AmountOfSubstance:      {"mol", 1e-9},
	LuminousIntensity:      {"cd", 1e-9},
	PlaneAngle:             {"rad", math.Pi / 180 / 10},
	Pressure:               {"Pa", 1e-1},
	Acceleration:           {"m_s2", 1e-1},
	Force:                  {"N", 1e-1},
	Speed:                  {"m_s", 1e-1},
	Energy:                 {"J", 1e-4},
	Power:                  {"W", 1e-4},
	ElectricalConductance:  {"S", 1e-9},
	ElectricalConductivity: {"S_m", 1e-9},
	Turbidity:              {"FNU", 1e-9},
}

// NewDomain returns a registry filled with the default tolerances.
func NewDomain() *Domain {
	d := &Domain{}
	for q, def := range defaultTolerances {
		mu, err := LookupUnit(PhysicalQuantity(q), def.unit)
		if err != nil {
			panic(fmt.Sprintf("units: default table: %v", err))
		}
		*domainSlots[q](d) = NewMeasureUnitWithDefaultTolerance(def.tol, mu)
	}
	return d
}

// Get returns the entry for q.
func (d *Domain) Get(q PhysicalQuantity) (MeasureUnitWithDefaultTolerance, error) {
	if !q.Valid() {
		return MeasureUnitWithDefaultTolerance{}, fmt.Errorf("units: %s: %w", q, ErrUnknownQuantity)
	}
	return *domainSlots[q](d), nil
}

// Set replaces the entry for q. The entry's unit must measure q.
func (d *Domain) Set(q PhysicalQuantity, v MeasureUnitWithDefaultTolerance) error {
	if !q.Valid() {
		return fmt.Errorf("units: %s: %w", q, ErrUnknownQuantity)
	}
	if v.MU.Quantity != q {
		return fmt.Errorf("units: set %s with a %s unit: %w", q, v.MU.Quantity, ErrQuantityMismatch)
	}
	*domainSlots[q](d) = v
	return nil
}

// All returns every entry in quantity order.
func (d *Domain) All() []MeasureUnitWithDefaultTolerance {
	out := make([]MeasureUnitWithDefaultTolerance, numQuantities)
	for q := range domainSlots {
		out[q] = *domainSlots[q](d)
	}
	return out
}

// ByPhysicalQuantity looks an entry up by quantity name.
func (d *Domain) ByPhysicalQuantity(pqName string) (MeasureUnitWithDefaultTolerance, error) {
	q, err := ParsePhysicalQuantity(pqName)
	if err != nil {
		return MeasureUnitWithDefaultTolerance{}, err
	}
	return d.Get(q)
}

// SetupItem switches the entry of quantity pqName to unit muName. With a nil
// tol the current tolerance is converted to the new unit; otherwise *tol is
// taken as already expressed in muName.
func (d *Domain) SetupItem(pqName, muName string, tol *float64) error {
	q, err := ParsePhysicalQuantity(pqName)
	if err != nil {
		return err
	}
	mu, err := LookupUnit(q, muName)
	if err != nil {
		return err
	}

	slot := domainSlots[q](d)
	if tol != nil {
		*slot = MeasureUnitWithDefaultTolerance{ID: slot.ID, DefaultTolerance: *tol, MU: mu}
		return nil
	}

	converted, err := slot.ConvertTo(mu)
	if err != nil {
		return fmt.Errorf("units: setup %s: %w", q, err)
	}
	*slot = converted
	return nil
}
