package handler

import (
	"errors"
	"net/http"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/pkg/utils"
	"github.com/go-chi/chi/v5"
)

// GetCart возвращает корзину покупателя.
// @Summary      Корзина
// @Tags         cart
// @Success      200  {object}  Cart
// @Failure      401  {object}  utils.ErrorResponse "Неизвестный пользователь"
// @Router       /cart [get]
func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	cart := h.cart.Cart(r.Context(), actor.UserID)
	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// AddCartItem добавляет лекарство в корзину.
// @Summary      Добавить в корзину
// @Description  Добавляет позицию или увеличивает количество уже лежащей
// @Tags         cart
// @Param        input  body  AddCartItemRequest  true  "Позиция"
// @Success      200  {object}  Cart
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401  {object}  utils.ErrorResponse "Неизвестный пользователь"
// @Failure      404  {object}  utils.ErrorResponse "Лекарство не найдено"
// @Failure      409  {object}  utils.ErrorResponse "Нет в наличии"
// @Router       /cart/items [post]
func (h *HTTPHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	var req AddCartItemRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	cart, err := h.cart.AddItem(ctx, actor.UserID, req.MedicineID, req.Quantity)

	switch {
	case errors.Is(err, entities.ErrMedicineNotFound):
		utils.WriteError(w, "medicine not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrOutOfStock):
		utils.WriteError(w, "medicine is out of stock", http.StatusConflict)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to add cart item", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// UpdateCartItem меняет количество позиции в корзине.
// @Summary      Изменить количество
// @Description  Количество меньше единицы удаляет позицию из корзины
// @Tags         cart
// @Param        medicine_id  path  string                 true  "Идентификатор лекарства"
// @Param        input        body  UpdateCartItemRequest  true  "Новое количество"
// @Success      200  {object}  Cart
// @Failure      400  {object}  utils.ErrorResponse "Некорректное тело запроса"
// @Failure      401  {object}  utils.ErrorResponse "Неизвестный пользователь"
// @Router       /cart/items/{medicine_id} [patch]
func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	var req UpdateCartItemRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cart := h.cart.UpdateQuantity(r.Context(), actor.UserID, chi.URLParam(r, "medicine_id"), req.Quantity)
	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// RemoveCartItem удаляет позицию из корзины.
// @Summary      Удалить из корзины
// @Tags         cart
// @Param        medicine_id  path  string  true  "Идентификатор лекарства"
// @Success      200  {object}  Cart
// @Failure      401  {object}  utils.ErrorResponse "Неизвестный пользователь"
// @Router       /cart/items/{medicine_id} [delete]
func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	cart := h.cart.RemoveItem(r.Context(), actor.UserID, chi.URLParam(r, "medicine_id"))
	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// ClearCart очищает корзину.
// @Summary      Очистить корзину
// @Tags         cart
// @Success      204  "Корзина очищена"
// @Failure      401  {object}  utils.ErrorResponse "Неизвестный пользователь"
// @Router       /cart [delete]
func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	h.cart.Clear(r.Context(), actor.UserID)
	w.WriteHeader(http.StatusNoContent)
}
