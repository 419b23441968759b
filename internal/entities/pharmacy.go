package entities

import "errors"

type Pharmacy struct {
	ID          string
	Name        string
	Address     string
	City        string
	State       string
	ZipCode     string
	Phone       string
	Email       string
	Description string
	ImageURL    string
	Rating      float64
	ReviewCount int
}

var ErrPharmacyNotFound = errors.New("pharmacy not found")
