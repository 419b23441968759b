package service

import (
	"context"
	"log/slog"

	"github.com/ArtemGolubev/medshop-service/internal/entities"

	"github.com/google/uuid"
)

type CatalogRepo interface {
	Medicines(ctx context.Context) ([]entities.Medicine, error)
	MedicineByID(ctx context.Context, id string) (entities.Medicine, error)
	MedicinesByCategory(ctx context.Context, category string) ([]entities.Medicine, error)
	SearchMedicines(ctx context.Context, query string) ([]entities.Medicine, error)
	CreateMedicine(ctx context.Context, m entities.Medicine) error
	UpdateMedicineStock(ctx context.Context, id string, stock int) error

	Pharmacies(ctx context.Context) ([]entities.Pharmacy, error)
	PharmacyByID(ctx context.Context, id string) (entities.Pharmacy, error)
	SearchPharmacies(ctx context.Context, query string) ([]entities.Pharmacy, error)
}

type catalogService struct {
	logger *slog.Logger
	repo   CatalogRepo
}

func NewCatalogService(logger *slog.Logger, repo CatalogRepo) *catalogService {
	return &catalogService{
		logger: logger.With(slog.String("service", "catalog")),
		repo:   repo,
	}
}

// Medicines lists the catalog, optionally narrowed by category or a
// free-text query. Category wins when both are present.
func (s *catalogService) Medicines(ctx context.Context, category, query string) ([]entities.Medicine, error) {
	switch {
	case category != "":
		return s.repo.MedicinesByCategory(ctx, category)
	case query != "":
		return s.repo.SearchMedicines(ctx, query)
	default:
		return s.repo.Medicines(ctx)
	}
}

func (s *catalogService) MedicineByID(ctx context.Context, id string) (entities.Medicine, error) {
	return s.repo.MedicineByID(ctx, id)
}

// AddMedicine registers a new catalog entry for the pharmacist's own
// pharmacy.
func (s *catalogService) AddMedicine(ctx context.Context, actor entities.Actor, m entities.Medicine) (entities.Medicine, error) {
	if !actor.CanManagePharmacy(m.PharmacyID) {
		return entities.Medicine{}, entities.ErrForbidden
	}

	m.ID = uuid.NewString()
	if err := s.repo.CreateMedicine(ctx, m); err != nil {
		return entities.Medicine{}, err
	}
	s.logger.Debug("medicine added",
		slog.String("medicine_id", m.ID),
		slog.String("pharmacy_id", m.PharmacyID),
	)
	return m, nil
}

// UpdateStock sets the absolute stock level. This is the only path
// that changes stock; order creation deliberately does not decrement
// it.
func (s *catalogService) UpdateStock(ctx context.Context, actor entities.Actor, medicineID string, stock int) (entities.Medicine, error) {
	medicine, err := s.repo.MedicineByID(ctx, medicineID)
	if err != nil {
		return entities.Medicine{}, err
	}
	if !actor.CanManagePharmacy(medicine.PharmacyID) {
		return entities.Medicine{}, entities.ErrForbidden
	}

	if err := s.repo.UpdateMedicineStock(ctx, medicineID, stock); err != nil {
		return entities.Medicine{}, err
	}
	medicine.Stock = stock
	return medicine, nil
}

func (s *catalogService) Pharmacies(ctx context.Context, query string) ([]entities.Pharmacy, error) {
	if query != "" {
		return s.repo.SearchPharmacies(ctx, query)
	}
	return s.repo.Pharmacies(ctx)
}

func (s *catalogService) PharmacyByID(ctx context.Context, id string) (entities.Pharmacy, error) {
	return s.repo.PharmacyByID(ctx, id)
}
