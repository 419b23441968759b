package service

import (
	"context"
	"log/slog"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
)

type MedicineGetter interface {
	MedicineByID(ctx context.Context, id string) (entities.Medicine, error)
}

type CartStore interface {
	Cart(customerID string) entities.Cart
	Update(customerID string, fn func(c *entities.Cart)) entities.Cart
	Clear(customerID string)
}

type cartService struct {
	logger    *slog.Logger
	medicines MedicineGetter
	store     CartStore
}

func NewCartService(logger *slog.Logger, medicines MedicineGetter, store CartStore) *cartService {
	return &cartService{
		logger:    logger.With(slog.String("service", "cart")),
		medicines: medicines,
		store:     store,
	}
}

func (s *cartService) Cart(_ context.Context, customerID string) entities.Cart {
	return s.store.Cart(customerID)
}

// AddItem resolves the medicine and merges it into the customer's
// cart. Only in-stock medicines can be added; the quantity is not
// clamped against the stock level here.
func (s *cartService) AddItem(ctx context.Context, customerID, medicineID string, quantity int) (entities.Cart, error) {
	medicine, err := s.medicines.MedicineByID(ctx, medicineID)
	if err != nil {
		return entities.Cart{}, err
	}
	if !medicine.InStock() {
		return entities.Cart{}, entities.ErrOutOfStock
	}

	cart := s.store.Update(customerID, func(c *entities.Cart) {
		c.AddItem(medicine, quantity)
	})
	s.logger.Debug("item added to cart",
		slog.String("customer_id", customerID),
		slog.String("medicine_id", medicineID),
	)
	return cart, nil
}

// UpdateQuantity replaces the line's quantity; zero or below removes
// the line. Unknown medicine ids are a no-op, not an error.
func (s *cartService) UpdateQuantity(_ context.Context, customerID, medicineID string, quantity int) entities.Cart {
	return s.store.Update(customerID, func(c *entities.Cart) {
		c.UpdateQuantity(medicineID, quantity)
	})
}

func (s *cartService) RemoveItem(_ context.Context, customerID, medicineID string) entities.Cart {
	return s.store.Update(customerID, func(c *entities.Cart) {
		c.RemoveItem(medicineID)
	})
}

func (s *cartService) Clear(_ context.Context, customerID string) {
	s.store.Clear(customerID)
}
