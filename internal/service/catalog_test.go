package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/internal/repo"
	"github.com/ArtemGolubev/medshop-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogAPI interface {
	Medicines(ctx context.Context, category, query string) ([]entities.Medicine, error)
	MedicineByID(ctx context.Context, id string) (entities.Medicine, error)
	AddMedicine(ctx context.Context, actor entities.Actor, m entities.Medicine) (entities.Medicine, error)
	UpdateStock(ctx context.Context, actor entities.Actor, medicineID string, stock int) (entities.Medicine, error)
	Pharmacies(ctx context.Context, query string) ([]entities.Pharmacy, error)
	PharmacyByID(ctx context.Context, id string) (entities.Pharmacy, error)
}

func newCatalogFixture(t *testing.T) catalogAPI {
	t.Helper()
	store := repo.NewMemoryStore()
	repo.Seed(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewCatalogService(logger, store)
}

func TestCatalogService_Medicines(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture(t)

	all, err := svc.Medicines(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	byCategory, err := svc.Medicines(ctx, "Antibiotics", "")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Amoxicillin", byCategory[0].Name)
	assert.True(t, byCategory[0].RequiresPrescription)

	searched, err := svc.Medicines(ctx, "", "blood")
	require.NoError(t, err)
	assert.Len(t, searched, 2) // Lisinopril and Metformin mention blood

	_, err = svc.MedicineByID(ctx, "med-404")
	assert.ErrorIs(t, err, entities.ErrMedicineNotFound)
}

func TestCatalogService_UpdateStock(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture(t)

	pharmacist := entities.Actor{UserID: "u1", Role: entities.RolePharmacist, PharmacyID: "pharm-1"}

	med, err := svc.UpdateStock(ctx, pharmacist, "med-1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, med.Stock)

	// med-4 belongs to pharm-2
	_, err = svc.UpdateStock(ctx, pharmacist, "med-4", 10)
	assert.ErrorIs(t, err, entities.ErrForbidden)

	customer := entities.Actor{UserID: "u2", Role: entities.RoleCustomer}
	_, err = svc.UpdateStock(ctx, customer, "med-1", 10)
	assert.ErrorIs(t, err, entities.ErrForbidden)
}

func TestCatalogService_AddMedicine(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture(t)

	pharmacist := entities.Actor{UserID: "u1", Role: entities.RolePharmacist, PharmacyID: "pharm-1"}

	created, err := svc.AddMedicine(ctx, pharmacist, entities.Medicine{
		PharmacyID: "pharm-1",
		Name:       "Aspirin",
		Price:      decimal.RequireFromString("4.25"),
		Stock:      30,
		Category:   "Pain Relief",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.MedicineByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", got.Name)

	_, err = svc.AddMedicine(ctx, pharmacist, entities.Medicine{PharmacyID: "pharm-2", Name: "X"})
	assert.ErrorIs(t, err, entities.ErrForbidden)
}

func TestCatalogService_Pharmacies(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture(t)

	all, err := svc.Pharmacies(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	found, err := svc.Pharmacies(ctx, "healthplus")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "pharm-1", found[0].ID)

	p, err := svc.PharmacyByID(ctx, "pharm-2")
	require.NoError(t, err)
	assert.Equal(t, "MediCare Pharmacy", p.Name)
}
