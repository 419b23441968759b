package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArtemGolubev/medshop-service/internal/config"
	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/pkg/trm"
	"github.com/ArtemGolubev/medshop-service/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	OrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error)
	OrdersByPharmacy(ctx context.Context, pharmacyID string) ([]entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)

	// Save operations are idempotent (ON CONFLICT DO NOTHING in the
	// postgres implementation), so retrying a whole checkout is safe.
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error

	UpdateOrderStatus(ctx context.Context, o entities.Order) error
}

type OrderCache interface {
	Get(key string) (entities.Order, bool)
	Set(key string, value entities.Order)
	Delete(key string)
}

type EventPublisher interface {
	OrderCreated(ctx context.Context, o entities.Order) error
	OrderStatusChanged(ctx context.Context, o entities.Order) error
}

// CreateOrderInput carries a finalized cart snapshot plus the shipping
// and payment metadata collected at checkout. Shipping fields are
// validated at the transport boundary, not here.
type CreateOrderInput struct {
	CustomerID      string
	PharmacyID      string
	PharmacyName    string
	Lines           []entities.CartLine
	ShippingAddress string
	PaymentMethod   string
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     OrderCache
	events    EventPublisher
	pricing   config.Pricing
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	cache OrderCache,
	events EventPublisher,
	pricing config.Pricing,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		events:    events,
		pricing:   pricing,
	}
}

var retryCfg = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  5,
	Multiplier:   2,
}

// CreateOrder builds an immutable order from the cart snapshot: item
// snapshots by value, total fixed at creation, fresh id, pending
// status. The total is subtotal + shipping fee + subtotal * tax rate,
// rounded to two decimals.
func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	if len(in.Lines) == 0 {
		return entities.Order{}, entities.ErrEmptyCart
	}

	subtotal := decimal.Zero
	items := make([]entities.OrderItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		items = append(items, entities.OrderItem{
			MedicineID:   line.Medicine.ID,
			MedicineName: line.Medicine.Name,
			Quantity:     line.Quantity,
			Price:        line.Medicine.Price,
		})
		subtotal = subtotal.Add(line.Medicine.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	total := subtotal.
		Add(s.pricing.ShippingFee).
		Add(subtotal.Mul(s.pricing.TaxRate)).
		Round(2)

	now := time.Now().UTC()
	order := entities.Order{
		ID:              uuid.NewString(),
		CustomerID:      in.CustomerID,
		PharmacyID:      in.PharmacyID,
		PharmacyName:    in.PharmacyName,
		Items:           items,
		TotalAmount:     total,
		Status:          entities.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	}

	fn := func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.repo.SaveOrder(ctx, order); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			if err := s.repo.SaveItems(ctx, order.ID, order.Items); err != nil {
				return fmt.Errorf("failed to save order items: %w", err)
			}
			return nil
		})
	}
	if err := utils.Retry(retryCfg, fn); err != nil {
		return entities.Order{}, err
	}

	s.cache.Set(order.ID, order)
	s.logger.Debug("order created",
		slog.String("order_id", order.ID),
		slog.String("customer_id", order.CustomerID),
		slog.String("total", order.TotalAmount.String()),
	)

	if err := s.events.OrderCreated(ctx, order); err != nil {
		s.logger.Error("failed to publish order created event",
			slog.String("order_id", order.ID), slog.Any("error", err))
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if order, ok := s.cache.Get(orderID); ok {
		return order, nil
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}
	if err := utils.Retry(retryCfg, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}

	s.cache.Set(orderID, order)
	return order, nil
}

func (s *orderService) OrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	return s.repo.OrdersByCustomer(ctx, customerID)
}

func (s *orderService) OrdersByPharmacy(ctx context.Context, pharmacyID string) ([]entities.Order, error) {
	return s.repo.OrdersByPharmacy(ctx, pharmacyID)
}

// UpdateStatus advances the order's status. Only a pharmacist of the
// order's pharmacy may call it; the tracking number is attached on the
// shipped status and never cleared afterwards. Any valid status is
// accepted regardless of the current one.
func (s *orderService) UpdateStatus(
	ctx context.Context,
	actor entities.Actor,
	orderID string,
	status entities.OrderStatus,
	trackingNumber string,
) (entities.Order, error) {
	if !status.IsValid() {
		return entities.Order{}, entities.ErrInvalidStatus
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if !actor.CanManagePharmacy(order.PharmacyID) {
		return entities.Order{}, entities.ErrForbidden
	}

	order.ApplyStatus(status, trackingNumber, time.Now().UTC())

	if err := s.repo.UpdateOrderStatus(ctx, order); err != nil {
		return entities.Order{}, err
	}

	s.cache.Set(order.ID, order)
	s.logger.Debug("order status updated",
		slog.String("order_id", order.ID),
		slog.String("status", order.Status.String()),
	)

	if err := s.events.OrderStatusChanged(ctx, order); err != nil {
		s.logger.Error("failed to publish status changed event",
			slog.String("order_id", order.ID), slog.Any("error", err))
	}

	return order, nil
}

// WarmUpCache preloads the most recent orders after startup.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to warm up cache: %w", err)
	}
	for _, order := range orders {
		s.cache.Set(order.ID, order)
	}
	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}
