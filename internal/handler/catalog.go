package handler

import (
	"errors"
	"net/http"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ListMedicines возвращает каталог лекарств.
// @Summary      Список лекарств
// @Description  Возвращает каталог, опционально по категории или поисковому запросу
// @Tags         medicines
// @Param        category  query  string  false  "Категория"
// @Param        q         query  string  false  "Поисковый запрос"
// @Success      200  {array}   Medicine
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /medicines [get]
func (h *HTTPHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	medicines, err := h.catalog.Medicines(ctx, r.URL.Query().Get("category"), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list medicines", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, MedicinesEntityToJSON(medicines), http.StatusOK)
}

// GetMedicineByID возвращает лекарство по ID.
// @Summary      Получить лекарство
// @Tags         medicines
// @Param        medicine_id  path  string  true  "Идентификатор лекарства"
// @Success      200  {object}  Medicine
// @Failure      404  {object}  utils.ErrorResponse "Лекарство не найдено"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /medicines/{medicine_id} [get]
func (h *HTTPHandler) GetMedicineByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	medicineID := chi.URLParam(r, "medicine_id")

	medicine, err := h.catalog.MedicineByID(ctx, medicineID)

	if errors.Is(err, entities.ErrMedicineNotFound) {
		utils.WriteError(w, "medicine not found", http.StatusNotFound)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get medicine", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, MedicineEntityToJSON(medicine), http.StatusOK)
}

// CreateMedicine добавляет лекарство в каталог своей аптеки.
// @Summary      Добавить лекарство
// @Tags         medicines
// @Param        input  body  CreateMedicineRequest  true  "Новое лекарство"
// @Success      201  {object}  Medicine
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      403  {object}  utils.ErrorResponse "Недостаточно прав"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /medicines [post]
func (h *HTTPHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	var req CreateMedicineRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	medicine, err := h.catalog.AddMedicine(ctx, actor, entities.Medicine{
		PharmacyID:           req.PharmacyID,
		Name:                 req.Name,
		Description:          req.Description,
		Price:                decimal.NewFromFloat(req.Price),
		Dosage:               req.Dosage,
		Usage:                req.Usage,
		SideEffects:          req.SideEffects,
		Benefits:             req.Benefits,
		ImageURL:             req.ImageURL,
		Stock:                req.Stock,
		Category:             req.Category,
		RequiresPrescription: req.RequiresPrescription,
	})

	if errors.Is(err, entities.ErrForbidden) {
		utils.WriteError(w, "forbidden", http.StatusForbidden)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create medicine", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, MedicineEntityToJSON(medicine), http.StatusCreated)
}

// UpdateMedicineStock выставляет остаток на складе.
// @Summary      Обновить остаток
// @Tags         medicines
// @Param        medicine_id  path  string              true  "Идентификатор лекарства"
// @Param        input        body  UpdateStockRequest  true  "Новый остаток"
// @Success      200  {object}  Medicine
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      403  {object}  utils.ErrorResponse "Недостаточно прав"
// @Failure      404  {object}  utils.ErrorResponse "Лекарство не найдено"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /medicines/{medicine_id}/stock [patch]
func (h *HTTPHandler) UpdateMedicineStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	medicineID := chi.URLParam(r, "medicine_id")

	actor, err := actorFromRequest(r)
	if err != nil {
		utils.WriteError(w, "unknown actor", http.StatusUnauthorized)
		return
	}

	var req UpdateStockRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	medicine, err := h.catalog.UpdateStock(ctx, actor, medicineID, req.Stock)

	switch {
	case errors.Is(err, entities.ErrMedicineNotFound):
		utils.WriteError(w, "medicine not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to update stock", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, MedicineEntityToJSON(medicine), http.StatusOK)
}

// ListPharmacies возвращает список аптек.
// @Summary      Список аптек
// @Tags         pharmacies
// @Param        q  query  string  false  "Поисковый запрос"
// @Success      200  {array}   Pharmacy
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /pharmacies [get]
func (h *HTTPHandler) ListPharmacies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pharmacies, err := h.catalog.Pharmacies(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list pharmacies", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, PharmaciesEntityToJSON(pharmacies), http.StatusOK)
}

// GetPharmacyByID возвращает аптеку по ID.
// @Summary      Получить аптеку
// @Tags         pharmacies
// @Param        pharmacy_id  path  string  true  "Идентификатор аптеки"
// @Success      200  {object}  Pharmacy
// @Failure      404  {object}  utils.ErrorResponse "Аптека не найдена"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /pharmacies/{pharmacy_id} [get]
func (h *HTTPHandler) GetPharmacyByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pharmacyID := chi.URLParam(r, "pharmacy_id")

	pharmacy, err := h.catalog.PharmacyByID(ctx, pharmacyID)

	if errors.Is(err, entities.ErrPharmacyNotFound) {
		utils.WriteError(w, "pharmacy not found", http.StatusNotFound)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get pharmacy", slogErr(err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, PharmacyEntityToJSON(pharmacy), http.StatusOK)
}
