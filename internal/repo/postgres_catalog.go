package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ArtemGolubev/medshop-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var medicineColumns = []string{
	"id", "pharmacy_id", "name", "description", "price", "dosage", "usage",
	"side_effects", "benefits", "image_url", "stock", "category",
	"requires_prescription", "manufacture_date", "expiry_date",
}

var pharmacyColumns = []string{
	"id", "name", "address", "city", "state", "zip_code", "phone", "email",
	"description", "image_url", "rating", "review_count",
}

type postgresCatalogRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresCatalogRepo(db *sqlx.DB) *postgresCatalogRepo {
	return &postgresCatalogRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresCatalogRepo) Medicines(ctx context.Context) ([]entities.Medicine, error) {
	return r.selectMedicines(ctx, nil)
}

func (r *postgresCatalogRepo) MedicineByID(ctx context.Context, id string) (entities.Medicine, error) {
	query, args := r.qb.Select(medicineColumns...).
		From("medicines").
		Where(sq.Eq{"id": id}).
		MustSql()

	var m Medicine
	err := r.db.GetContext(ctx, &m, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Medicine{}, entities.ErrMedicineNotFound
	}
	if err != nil {
		return entities.Medicine{}, fmt.Errorf("failed to get medicine: %w", err)
	}
	return MedicineToEntity(m), nil
}

func (r *postgresCatalogRepo) MedicinesByCategory(ctx context.Context, category string) ([]entities.Medicine, error) {
	return r.selectMedicines(ctx, sq.Eq{"category": category})
}

func (r *postgresCatalogRepo) SearchMedicines(ctx context.Context, query string) ([]entities.Medicine, error) {
	pattern := "%" + query + "%"
	return r.selectMedicines(ctx, sq.Or{
		sq.ILike{"name": pattern},
		sq.ILike{"description": pattern},
		sq.ILike{"category": pattern},
	})
}

func (r *postgresCatalogRepo) CreateMedicine(ctx context.Context, m entities.Medicine) error {
	query, args := r.qb.Insert("medicines").
		Columns(medicineColumns...).
		Values(
			m.ID, nullString(m.PharmacyID), m.Name, nullString(m.Description),
			m.Price, nullString(m.Dosage), nullString(m.Usage),
			stringArray(m.SideEffects), stringArray(m.Benefits),
			nullString(m.ImageURL), m.Stock, nullString(m.Category),
			m.RequiresPrescription, m.ManufactureDate, m.ExpiryDate,
		).
		MustSql()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

func (r *postgresCatalogRepo) UpdateMedicineStock(ctx context.Context, id string, stock int) error {
	query, args := r.qb.Update("medicines").
		Set("stock", stock).
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrMedicineNotFound
	}
	return nil
}

func (r *postgresCatalogRepo) Pharmacies(ctx context.Context) ([]entities.Pharmacy, error) {
	return r.selectPharmacies(ctx, nil)
}

func (r *postgresCatalogRepo) PharmacyByID(ctx context.Context, id string) (entities.Pharmacy, error) {
	query, args := r.qb.Select(pharmacyColumns...).
		From("pharmacies").
		Where(sq.Eq{"id": id}).
		MustSql()

	var p Pharmacy
	err := r.db.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Pharmacy{}, entities.ErrPharmacyNotFound
	}
	if err != nil {
		return entities.Pharmacy{}, fmt.Errorf("failed to get pharmacy: %w", err)
	}
	return PharmacyToEntity(p), nil
}

func (r *postgresCatalogRepo) SearchPharmacies(ctx context.Context, query string) ([]entities.Pharmacy, error) {
	pattern := "%" + query + "%"
	return r.selectPharmacies(ctx, sq.Or{
		sq.ILike{"name": pattern},
		sq.ILike{"address": pattern},
		sq.ILike{"description": pattern},
	})
}

func (r *postgresCatalogRepo) selectMedicines(ctx context.Context, where any) ([]entities.Medicine, error) {
	q := r.qb.Select(medicineColumns...).From("medicines").OrderBy("name")
	if where != nil {
		q = q.Where(where)
	}
	query, args := q.MustSql()

	var rows []Medicine
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select medicines: %w", err)
	}

	result := make([]entities.Medicine, 0, len(rows))
	for _, m := range rows {
		result = append(result, MedicineToEntity(m))
	}
	return result, nil
}

func (r *postgresCatalogRepo) selectPharmacies(ctx context.Context, where any) ([]entities.Pharmacy, error) {
	q := r.qb.Select(pharmacyColumns...).From("pharmacies").OrderBy("name")
	if where != nil {
		q = q.Where(where)
	}
	query, args := q.MustSql()

	var rows []Pharmacy
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select pharmacies: %w", err)
	}

	result := make([]entities.Pharmacy, 0, len(rows))
	for _, p := range rows {
		result = append(result, PharmacyToEntity(p))
	}
	return result, nil
}
