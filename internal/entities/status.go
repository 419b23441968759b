package entities

import "fmt"

// OrderStatus tracks the lifecycle of an order. The intended flow is
// pending -> processing -> shipped -> delivered, but any valid status
// may be set at any time; delivered is terminal only by convention at
// the presentation boundary.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"

	// StatusCancelled is a reserved value: it parses and displays, but
	// no operation ever produces it.
	StatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// StatusStepCount is the denominator for progress display.
const StatusStepCount = 4

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Step returns the ordinal of the status in the intended progression,
// from 0 (pending) to 3 (delivered). Cancelled has no position and
// maps to -1.
func (s OrderStatus) Step() int {
	switch s {
	case StatusPending:
		return 0
	case StatusProcessing:
		return 1
	case StatusShipped:
		return 2
	case StatusDelivered:
		return 3
	default:
		return -1
	}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}
