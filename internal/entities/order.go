package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a snapshot captured at checkout. Later changes to the
// medicine's price or name do not alter historical orders.
type OrderItem struct {
	MedicineID   string
	MedicineName string
	Quantity     int
	Price        decimal.Decimal
}

type Order struct {
	ID              string
	CustomerID      string
	PharmacyID      string
	PharmacyName    string
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ShippingAddress string
	PaymentMethod   string
	TrackingNumber  string
}

// ApplyStatus moves the order to the given status and refreshes
// UpdatedAt. The tracking number is stored only together with the
// shipped status; once set it survives later status changes.
func (o *Order) ApplyStatus(status OrderStatus, trackingNumber string, now time.Time) {
	o.Status = status
	o.UpdatedAt = now
	if status == StatusShipped && trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
}

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrForbidden      = errors.New("actor is not allowed to perform this operation")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrUnknownActor   = errors.New("unknown actor")
	ErrInvalidPayload = errors.New("invalid payload")
)
