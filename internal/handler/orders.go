package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/internal/service"
	"github.com/ArtemGolubev/medshop-service/pkg/utils"
	"github.com/go-chi/chi/v5"
)

// Checkout оформляет заказ из текущей корзины покупателя.
// @Summary      Оформить заказ
// @Description  Снимает слепок корзины, фиксирует сумму и очищает корзину
// @Tags         orders
// @Param        input  body  CheckoutRequest  true  "Данные доставки и оплаты"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401  {object}  utils.ErrorResponse "Неизвестный пользователь"
// @Failure      409  {object}  utils.ErrorResponse "Корзина пуста"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	var req CheckoutRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	cart := h.cart.Cart(ctx, actor.UserID)
	if len(cart.Lines) == 0 {
		utils.WriteError(w, "cart is empty", http.StatusConflict)
		return
	}

	pharmacyID := cart.Lines[0].Medicine.PharmacyID
	pharmacyName := ""
	if pharmacy, err := h.catalog.PharmacyByID(ctx, pharmacyID); err == nil {
		pharmacyName = pharmacy.Name
	}

	order, err := h.orders.CreateOrder(ctx, service.CreateOrderInput{
		CustomerID:      actor.UserID,
		PharmacyID:      pharmacyID,
		PharmacyName:    pharmacyName,
		Lines:           cart.Lines,
		ShippingAddress: fmt.Sprintf("%s, %s, %s, %s", req.FullName, req.Address, req.City, req.ZipCode),
		PaymentMethod:   req.PaymentMethod,
	})

	if errors.Is(err, entities.ErrEmptyCart) {
		utils.WriteError(w, "cart is empty", http.StatusConflict)
		return
	}

	if err != nil {
		checkoutsFailed.Inc()
		h.logger.ErrorContext(ctx, "failed to create order", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.cart.Clear(ctx, actor.UserID)

	ordersCreated.Inc()
	checkoutDuration.Observe(time.Since(start).Seconds())

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrderByID возвращает заказ по ID.
// @Summary      Получить заказ
// @Tags         orders
// @Param        order_id  path  string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.validate.Var(orderID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.GetOrderByID(ctx, orderID)

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slogErr(err), slog.String("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ListOrders возвращает заказы покупателя или аптеки.
// @Summary      Список заказов
// @Tags         orders
// @Param        customer_id  query  string  false  "Идентификатор покупателя"
// @Param        pharmacy_id  query  string  false  "Идентификатор аптеки"
// @Success      200  {array}   Order
// @Failure      400  {object}  utils.ErrorResponse "Не задан фильтр"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		orders []entities.Order
		err    error
	)
	switch {
	case r.URL.Query().Get("customer_id") != "":
		orders, err = h.orders.OrdersByCustomer(ctx, r.URL.Query().Get("customer_id"))
	case r.URL.Query().Get("pharmacy_id") != "":
		orders, err = h.orders.OrdersByPharmacy(ctx, r.URL.Query().Get("pharmacy_id"))
	default:
		utils.WriteError(w, "customer_id or pharmacy_id is required", http.StatusBadRequest)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// UpdateOrderStatus меняет статус заказа.
// @Summary      Изменить статус заказа
// @Description  Доступно фармацевту аптеки заказа; трек-номер принимается вместе со статусом shipped
// @Tags         orders
// @Param        order_id  path  string                    true  "Идентификатор заказа"
// @Param        input     body  UpdateOrderStatusRequest  true  "Новый статус"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Неизвестный статус"
// @Failure      401  {object}  utils.ErrorResponse "Неизвестный пользователь"
// @Failure      403  {object}  utils.ErrorResponse "Недостаточно прав"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id}/status [patch]
func (h *HTTPHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	var req UpdateOrderStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	status, err := entities.ParseOrderStatus(req.Status)
	if err != nil {
		utils.WriteError(w, "unknown order status", http.StatusBadRequest)
		return
	}

	order, err := h.orders.UpdateStatus(ctx, actor, orderID, status, req.TrackingNumber)

	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, "forbidden", http.StatusForbidden)
		return
	case errors.Is(err, entities.ErrInvalidStatus):
		utils.WriteError(w, "unknown order status", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to update order status", slogErr(err), slog.String("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	statusUpdates.WithLabelValues(order.Status.String()).Inc()

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}
