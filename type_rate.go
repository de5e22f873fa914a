package sellplan

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is a fraction in [0, 1), used for the partial tax exemption
// (Teilfreistellung) that applies to equity fund gains: a rate of 0.30
// means only 70% of the gain is taxable.
type Rate struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

var one = decimal.NewFromInt(1)

// Complement returns 1 - r, the taxable fraction.
func (r Rate) Complement() Rate { return Rate{value: one.Sub(r.value)} }

func (r Rate) Equal(s Rate) bool { return r.value.Equal(s.value) }
func (r Rate) IsZero() bool      { return r.value.IsZero() }

// Valid reports whether the rate is a usable exemption rate.
func (r Rate) Valid() bool {
	return !r.value.IsNegative() && r.value.LessThan(one)
}

func (r Rate) String() string {
	return fmt.Sprintf("%s%%", r.value.Shift(2).String())
}
