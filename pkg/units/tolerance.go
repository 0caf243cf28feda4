package units

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MeasureUnitWithDefaultTolerance pairs a unit with the tolerance to use
// when comparing values expressed in it.
type MeasureUnitWithDefaultTolerance struct {
	ID               primitive.ObjectID
	DefaultTolerance float64
	MU               MeasureUnit
}

// NewMeasureUnitWithDefaultTolerance returns a record with a fresh id.
func NewMeasureUnitWithDefaultTolerance(tol float64, mu MeasureUnit) MeasureUnitWithDefaultTolerance {
	return MeasureUnitWithDefaultTolerance{ID: primitive.NewObjectID(), DefaultTolerance: tol, MU: mu}
}

// Quantity is the physical quantity of the unit.
func (m MeasureUnitWithDefaultTolerance) Quantity() PhysicalQuantity {
	return m.MU.Quantity
}

func (m MeasureUnitWithDefaultTolerance) String() string {
	return fmt.Sprintf("%s: %g %s", m.MU.Quantity, m.DefaultTolerance, m.MU.Name)
}

// toleranceConverters holds the quantities whose tolerances do not convert
// by the plain factor ratio.
var toleranceConverters = map[PhysicalQuantity]func(tol float64, from, to MeasureUnit) (float64, error){
	// A tolerance is a difference, so temperature offsets cancel.
	Temperature: ConvertDelta,
}

// ConvertTo returns the same record expressed in to. The id is kept.
func (m MeasureUnitWithDefaultTolerance) ConvertTo(to MeasureUnit) (MeasureUnitWithDefaultTolerance, error) {
	if to.Quantity != m.MU.Quantity {
		return m, fmt.Errorf("units: convert %s to %s: %w", m.MU.Quantity, to.Quantity, ErrQuantityMismatch)
	}

	var tol float64
	if conv, ok := toleranceConverters[m.MU.Quantity]; ok {
		t, err := conv(m.DefaultTolerance, m.MU, to)
		if err != nil {
			return m, err
		}
		tol = t
	} else {
		k, err := ConvertFactor(m.MU, to)
		if err != nil {
			return m, err
		}
		tol = m.DefaultTolerance * k
	}

	return MeasureUnitWithDefaultTolerance{ID: m.ID, DefaultTolerance: tol, MU: to}, nil
}

// toleranceRecord is the stored form: units are referenced by name.
type toleranceRecord struct {
	ID  primitive.ObjectID `bson:"_id"`
	PQ  string             `bson:"PQ"`
	MU  string             `bson:"MU"`
	Tol float64            `bson:"tol"`
}

// MarshalBSON implements bson.Marshaler.
func (m MeasureUnitWithDefaultTolerance) MarshalBSON() ([]byte, error) {
	return bson.Marshal(toleranceRecord{
		ID:  m.ID,
		PQ:  m.MU.Quantity.String(),
		MU:  m.MU.Name,
		Tol: m.DefaultTolerance,
	})
}

// UnmarshalBSON implements bson.Unmarshaler, resolving the unit by name.
func (m *MeasureUnitWithDefaultTolerance) UnmarshalBSON(data []byte) error {
	var rec toleranceRecord
	if err := bson.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("units: decode tolerance: %w", err)
	}
	mu, err := Lookup(rec.PQ, rec.MU)
	if err != nil {
		return fmt.Errorf("units: decode tolerance: %w", err)
	}
	*m = MeasureUnitWithDefaultTolerance{ID: rec.ID, DefaultTolerance: rec.Tol, MU: mu}
	return nil
}
