package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Medicine struct {
	ID                   string
	PharmacyID           string
	Name                 string
	Description          string
	Price                decimal.Decimal
	Dosage               string
	Usage                string
	SideEffects          []string
	Benefits             []string
	ImageURL             string
	Stock                int
	Category             string
	RequiresPrescription bool
	ManufactureDate      time.Time
	ExpiryDate           time.Time
}

// InStock reports whether the medicine can be added to a cart.
func (m Medicine) InStock() bool {
	return m.Stock > 0
}

var (
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrOutOfStock       = errors.New("medicine is out of stock")
)
