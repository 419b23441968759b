package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in service.CreateOrderInput) (entities.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	OrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error)
	OrdersByPharmacy(ctx context.Context, pharmacyID string) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, actor entities.Actor, orderID string, status entities.OrderStatus, trackingNumber string) (entities.Order, error)
}

type CartService interface {
	Cart(ctx context.Context, customerID string) entities.Cart
	AddItem(ctx context.Context, customerID, medicineID string, quantity int) (entities.Cart, error)
	UpdateQuantity(ctx context.Context, customerID, medicineID string, quantity int) entities.Cart
	RemoveItem(ctx context.Context, customerID, medicineID string) entities.Cart
	Clear(ctx context.Context, customerID string)
}

type CatalogService interface {
	Medicines(ctx context.Context, category, query string) ([]entities.Medicine, error)
	MedicineByID(ctx context.Context, id string) (entities.Medicine, error)
	AddMedicine(ctx context.Context, actor entities.Actor, m entities.Medicine) (entities.Medicine, error)
	UpdateStock(ctx context.Context, actor entities.Actor, medicineID string, stock int) (entities.Medicine, error)
	Pharmacies(ctx context.Context, query string) ([]entities.Pharmacy, error)
	PharmacyByID(ctx context.Context, id string) (entities.Pharmacy, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	orders   OrderService
	cart     CartService
	catalog  CatalogService
}

func NewHTTPHandler(logger *slog.Logger, orders OrderService, cart CartService, catalog CatalogService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		orders:   orders,
		cart:     cart,
		catalog:  catalog,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/medicines", func(r chi.Router) {
		r.Get("/", h.ListMedicines)
		r.Post("/", h.CreateMedicine)
		r.Get("/{medicine_id}", h.GetMedicineByID)
		r.Patch("/{medicine_id}/stock", h.UpdateMedicineStock)
	})

	r.Route("/pharmacies", func(r chi.Router) {
		r.Get("/", h.ListPharmacies)
		r.Get("/{pharmacy_id}", h.GetPharmacyByID)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddCartItem)
		r.Patch("/items/{medicine_id}", h.UpdateCartItem)
		r.Delete("/items/{medicine_id}", h.RemoveCartItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Checkout)
		r.Get("/", h.ListOrders)
		r.Get("/{order_id}", h.GetOrderByID)
		r.Patch("/{order_id}/status", h.UpdateOrderStatus)
	})
}

// Заглушка авторизации: личность и роль берутся из заголовков,
// настоящая аутентификация живёт за пределами сервиса.
const (
	headerUserID     = "X-User-ID"
	headerUserRole   = "X-User-Role"
	headerPharmacyID = "X-Pharmacy-ID"
)

func slogErr(err error) slog.Attr {
	return slog.Any("error", err)
}

func actorFromRequest(r *http.Request) (entities.Actor, error) {
	userID := r.Header.Get(headerUserID)
	if userID == "" {
		return entities.Actor{}, entities.ErrUnknownActor
	}

	role := entities.Role(r.Header.Get(headerUserRole))
	if role == "" {
		role = entities.RoleCustomer
	}

	return entities.Actor{
		UserID:     userID,
		Role:       role,
		PharmacyID: r.Header.Get(headerPharmacyID),
	}, nil
}
