package handler

import (
	"time"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
)

// Medicine представляет позицию каталога
type Medicine struct {
	ID                   string    `json:"id"`
	PharmacyID           string    `json:"pharmacy_id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	Price                float64   `json:"price"`
	Dosage               string    `json:"dosage,omitempty"`
	Usage                string    `json:"usage,omitempty"`
	SideEffects          []string  `json:"side_effects,omitempty"`
	Benefits             []string  `json:"benefits,omitempty"`
	ImageURL             string    `json:"image_url,omitempty"`
	Stock                int       `json:"stock"`
	InStock              bool      `json:"in_stock"`
	Category             string    `json:"category,omitempty"`
	RequiresPrescription bool      `json:"requires_prescription"`
	ManufactureDate      time.Time `json:"manufacture_date,omitempty"`
	ExpiryDate           time.Time `json:"expiry_date,omitempty"`
}

// Pharmacy представляет аптеку
type Pharmacy struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	ZipCode     string  `json:"zip_code,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Email       string  `json:"email,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// CartLine строка корзины
type CartLine struct {
	Medicine Medicine `json:"medicine"`
	Quantity int      `json:"quantity"`
}

// Cart корзина покупателя с пересчитанными итогами
type Cart struct {
	Lines      []CartLine `json:"lines"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

// OrderItem строка заказа, снимок на момент оформления
type OrderItem struct {
	MedicineID   string  `json:"medicine_id"`
	MedicineName string  `json:"medicine_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// Order представляет заказ
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	PharmacyID      string      `json:"pharmacy_id"`
	PharmacyName    string      `json:"pharmacy_name,omitempty"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	Status          string      `json:"status"`
	StatusStep      int         `json:"status_step"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	PaymentMethod   string      `json:"payment_method,omitempty"`
	TrackingNumber  string      `json:"tracking_number,omitempty"`
}

type AddCartItemRequest struct {
	MedicineID string `json:"medicine_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	FullName      string `json:"full_name" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	ZipCode       string `json:"zip_code" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=creditCard paypal cashOnDelivery"`
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" validate:"required"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

type CreateMedicineRequest struct {
	PharmacyID           string   `json:"pharmacy_id" validate:"required"`
	Name                 string   `json:"name" validate:"required"`
	Description          string   `json:"description,omitempty"`
	Price                float64  `json:"price" validate:"required,gt=0"`
	Dosage               string   `json:"dosage,omitempty"`
	Usage                string   `json:"usage,omitempty"`
	SideEffects          []string `json:"side_effects,omitempty"`
	Benefits             []string `json:"benefits,omitempty"`
	ImageURL             string   `json:"image_url,omitempty"`
	Stock                int      `json:"stock" validate:"gte=0"`
	Category             string   `json:"category,omitempty"`
	RequiresPrescription bool     `json:"requires_prescription"`
}

type UpdateStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

func MedicineEntityToJSON(m entities.Medicine) Medicine {
	return Medicine{
		ID:                   m.ID,
		PharmacyID:           m.PharmacyID,
		Name:                 m.Name,
		Description:          m.Description,
		Price:                m.Price.InexactFloat64(),
		Dosage:               m.Dosage,
		Usage:                m.Usage,
		SideEffects:          m.SideEffects,
		Benefits:             m.Benefits,
		ImageURL:             m.ImageURL,
		Stock:                m.Stock,
		InStock:              m.InStock(),
		Category:             m.Category,
		RequiresPrescription: m.RequiresPrescription,
		ManufactureDate:      m.ManufactureDate,
		ExpiryDate:           m.ExpiryDate,
	}
}

func MedicinesEntityToJSON(medicines []entities.Medicine) []Medicine {
	out := make([]Medicine, 0, len(medicines))
	for _, m := range medicines {
		out = append(out, MedicineEntityToJSON(m))
	}
	return out
}

func PharmacyEntityToJSON(p entities.Pharmacy) Pharmacy {
	return Pharmacy{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		ZipCode:     p.ZipCode,
		Phone:       p.Phone,
		Email:       p.Email,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
	}
}

func PharmaciesEntityToJSON(pharmacies []entities.Pharmacy) []Pharmacy {
	out := make([]Pharmacy, 0, len(pharmacies))
	for _, p := range pharmacies {
		out = append(out, PharmacyEntityToJSON(p))
	}
	return out
}

func CartEntityToJSON(c entities.Cart) Cart {
	lines := make([]CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, CartLine{
			Medicine: MedicineEntityToJSON(line.Medicine),
			Quantity: line.Quantity,
		})
	}

	totals := c.Totals()
	return Cart{
		Lines:      lines,
		TotalItems: totals.TotalItems,
		TotalPrice: totals.TotalPrice.InexactFloat64(),
	}
}

func OrderItemEntityToJSON(i entities.OrderItem) OrderItem {
	return OrderItem{
		MedicineID:   i.MedicineID,
		MedicineName: i.MedicineName,
		Quantity:     i.Quantity,
		Price:        i.Price.InexactFloat64(),
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemEntityToJSON(it))
	}

	return Order{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		PharmacyID:      o.PharmacyID,
		PharmacyName:    o.PharmacyName,
		Items:           items,
		TotalAmount:     o.TotalAmount.InexactFloat64(),
		Status:          o.Status.String(),
		StatusStep:      o.Status.Step(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		TrackingNumber:  o.TrackingNumber,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderEntityToJSON(o))
	}
	return out
}
