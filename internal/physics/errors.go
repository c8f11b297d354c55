package physics

import (
	"errors"
	"fmt"
)

// Domain errors for model evaluation.
var (
	// ErrUnsupportedOrder indicates a reaction order outside {0, 1, 2}.
	ErrUnsupportedOrder = errors.New("physics: unsupported reaction order")

	// ErrUnsupportedFilter indicates an RLC filter kind outside the known set.
	ErrUnsupportedFilter = errors.New("physics: unsupported filter kind")
)

// OrderError reports the offending reaction order.
type OrderError struct {
	Order int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnsupportedOrder.Error(), e.Order)
}

func (e *OrderError) Unwrap() error {
	return ErrUnsupportedOrder
}
