package repo

import (
	"context"
	"time"

	"github.com/ArtemGolubev/medshop-service/internal/entities"

	"github.com/shopspring/decimal"
)

// Seed fills the memory store with the demo catalog used when no real
// database is configured.
func Seed(store *MemoryStore) {
	ctx := context.Background()

	manufactured := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	expires := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	medicines := []entities.Medicine{
		{
			ID: "med-1", PharmacyID: "pharm-1", Name: "Paracetamol",
			Description: "Pain reliever and fever reducer",
			Price:       decimal.RequireFromString("5.99"),
			Dosage:      "500mg", Stock: 100, Category: "Pain Relief",
		},
		{
			ID: "med-2", PharmacyID: "pharm-1", Name: "Amoxicillin",
			Description: "Antibiotic for bacterial infections",
			Price:       decimal.RequireFromString("12.99"),
			Dosage:      "250mg", Stock: 50, Category: "Antibiotics",
			RequiresPrescription: true,
		},
		{
			ID: "med-3", PharmacyID: "pharm-1", Name: "Ibuprofen",
			Description: "Anti-inflammatory pain reliever",
			Price:       decimal.RequireFromString("7.49"),
			Dosage:      "200mg", Stock: 85, Category: "Pain Relief",
		},
		{
			ID: "med-4", PharmacyID: "pharm-2", Name: "Lisinopril",
			Description: "Treats high blood pressure",
			Price:       decimal.RequireFromString("15.99"),
			Dosage:      "10mg", Stock: 60, Category: "Cardiovascular",
			RequiresPrescription: true,
		},
		{
			ID: "med-5", PharmacyID: "pharm-2", Name: "Cetirizine",
			Description: "Antihistamine for allergy relief",
			Price:       decimal.RequireFromString("8.99"),
			Dosage:      "10mg", Stock: 75, Category: "Allergy Relief",
		},
		{
			ID: "med-6", PharmacyID: "pharm-3", Name: "Metformin",
			Description: "Controls blood sugar levels",
			Price:       decimal.RequireFromString("10.49"),
			Dosage:      "500mg", Stock: 40, Category: "Diabetes",
			RequiresPrescription: true,
		},
	}

	for i := range medicines {
		medicines[i].ManufactureDate = manufactured
		medicines[i].ExpiryDate = expires
		store.CreateMedicine(ctx, medicines[i])
	}

	pharmacies := []entities.Pharmacy{
		{
			ID: "pharm-1", Name: "HealthPlus Pharmacy",
			Address: "123 Main Street", City: "Springfield", State: "IL",
			ZipCode: "62701", Phone: "555-0101", Email: "contact@healthplus.example",
			Rating: 4.7, ReviewCount: 128,
		},
		{
			ID: "pharm-2", Name: "MediCare Pharmacy",
			Address: "456 Oak Avenue", City: "Springfield", State: "IL",
			ZipCode: "62702", Phone: "555-0102", Email: "info@medicare-rx.example",
			Rating: 4.5, ReviewCount: 86,
		},
		{
			ID: "pharm-3", Name: "QuickMeds Pharmacy",
			Address: "789 Elm Road", City: "Shelbyville", State: "IL",
			ZipCode: "62565", Phone: "555-0103", Email: "hello@quickmeds.example",
			Rating: 4.2, ReviewCount: 54,
		},
		{
			ID: "pharm-4", Name: "Family Care Pharmacy",
			Address: "321 Pine Lane", City: "Shelbyville", State: "IL",
			ZipCode: "62565", Phone: "555-0104", Email: "care@familycare.example",
			Rating: 4.8, ReviewCount: 203,
		},
	}

	for _, p := range pharmacies {
		store.AddPharmacy(p)
	}
}
