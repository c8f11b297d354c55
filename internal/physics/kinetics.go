package physics

import (
	"math"
	"strconv"
)

// Order is the reaction order of dC/dt = −k·C^n.
type Order int

const (
	ZeroOrder   Order = 0
	FirstOrder  Order = 1
	SecondOrder Order = 2
)

// Orders lists the supported reaction orders.
func Orders() []Order {
	return []Order{ZeroOrder, FirstOrder, SecondOrder}
}

// ParseOrder converts n to an Order, rejecting anything outside {0, 1, 2}.
func ParseOrder(n int) (Order, error) {
	o := Order(n)
	if !o.Valid() {
		return 0, &OrderError{Order: n}
	}
	return o, nil
}

func (o Order) Valid() bool {
	return o == ZeroOrder || o == FirstOrder || o == SecondOrder
}

func (o Order) String() string {
	return "order " + strconv.Itoa(int(o))
}

// Concentration returns C(t). Zero order is not clamped at zero.
func Concentration(c0, k float64, o Order, t float64) (float64, error) {
	switch o {
	case ZeroOrder:
		return c0 - k*t, nil
	case FirstOrder:
		return c0 * math.Exp(-k*t), nil
	case SecondOrder:
		return c0 / (1 + k*c0*t), nil
	}
	return 0, &OrderError{Order: int(o)}
}

// ConcentrationProfile evaluates Concentration over a time grid.
func ConcentrationProfile(c0, k float64, o Order, t []float64) ([]float64, error) {
	if !o.Valid() {
		return nil, &OrderError{Order: int(o)}
	}
	out := make([]float64, len(t))
	for i, ti := range t {
		out[i], _ = Concentration(c0, k, o, ti)
	}
	return out, nil
}

// HalfLife returns the time at which C falls to C0/2.
func HalfLife(c0, k float64, o Order) (float64, error) {
	switch o {
	case ZeroOrder:
		return c0 / (2 * k), nil
	case FirstOrder:
		return math.Ln2 / k, nil
	case SecondOrder:
		return 1 / (k * c0), nil
	}
	return 0, &OrderError{Order: int(o)}
}
