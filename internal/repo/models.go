package repo

import (
	"database/sql"
	"time"

	"github.com/ArtemGolubev/medshop-service/internal/entities"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID              string          `db:"id"`
	CustomerID      string          `db:"customer_id"`
	PharmacyID      string          `db:"pharmacy_id"`
	PharmacyName    string          `db:"pharmacy_name"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          string          `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
	ShippingAddress string          `db:"shipping_address"`
	PaymentMethod   string          `db:"payment_method"`
	TrackingNumber  sql.NullString  `db:"tracking_number"`
}

type OrderItem struct {
	OrderID      string          `db:"order_id"`
	MedicineID   string          `db:"medicine_id"`
	MedicineName string          `db:"medicine_name"`
	Quantity     int             `db:"quantity"`
	Price        decimal.Decimal `db:"price"`
}

type Medicine struct {
	ID                   string          `db:"id"`
	PharmacyID           sql.NullString  `db:"pharmacy_id"`
	Name                 string          `db:"name"`
	Description          sql.NullString  `db:"description"`
	Price                decimal.Decimal `db:"price"`
	Dosage               sql.NullString  `db:"dosage"`
	Usage                sql.NullString  `db:"usage"`
	SideEffects          pq.StringArray  `db:"side_effects"`
	Benefits             pq.StringArray  `db:"benefits"`
	ImageURL             sql.NullString  `db:"image_url"`
	Stock                int             `db:"stock"`
	Category             sql.NullString  `db:"category"`
	RequiresPrescription bool            `db:"requires_prescription"`
	ManufactureDate      time.Time       `db:"manufacture_date"`
	ExpiryDate           time.Time       `db:"expiry_date"`
}

type Pharmacy struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Address     sql.NullString `db:"address"`
	City        sql.NullString `db:"city"`
	State       sql.NullString `db:"state"`
	ZipCode     sql.NullString `db:"zip_code"`
	Phone       sql.NullString `db:"phone"`
	Email       sql.NullString `db:"email"`
	Description sql.NullString `db:"description"`
	ImageURL    sql.NullString `db:"image_url"`
	Rating      float64        `db:"rating"`
	ReviewCount int            `db:"review_count"`
}

func OrderItemToEntity(it OrderItem) entities.OrderItem {
	return entities.OrderItem{
		MedicineID:   it.MedicineID,
		MedicineName: it.MedicineName,
		Quantity:     it.Quantity,
		Price:        it.Price,
	}
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	order := entities.Order{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		PharmacyID:      o.PharmacyID,
		PharmacyName:    o.PharmacyName,
		TotalAmount:     o.TotalAmount,
		Status:          entities.OrderStatus(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		TrackingNumber:  nullStringToString(o.TrackingNumber),
	}

	if len(items) > 0 {
		order.Items = make([]entities.OrderItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, OrderItemToEntity(it))
		}
	}

	return order
}

func MedicineToEntity(m Medicine) entities.Medicine {
	return entities.Medicine{
		ID:                   m.ID,
		PharmacyID:           nullStringToString(m.PharmacyID),
		Name:                 m.Name,
		Description:          nullStringToString(m.Description),
		Price:                m.Price,
		Dosage:               nullStringToString(m.Dosage),
		Usage:                nullStringToString(m.Usage),
		SideEffects:          m.SideEffects,
		Benefits:             m.Benefits,
		ImageURL:             nullStringToString(m.ImageURL),
		Stock:                m.Stock,
		Category:             nullStringToString(m.Category),
		RequiresPrescription: m.RequiresPrescription,
		ManufactureDate:      m.ManufactureDate,
		ExpiryDate:           m.ExpiryDate,
	}
}

func PharmacyToEntity(p Pharmacy) entities.Pharmacy {
	return entities.Pharmacy{
		ID:          p.ID,
		Name:        p.Name,
		Address:     nullStringToString(p.Address),
		City:        nullStringToString(p.City),
		State:       nullStringToString(p.State),
		ZipCode:     nullStringToString(p.ZipCode),
		Phone:       nullStringToString(p.Phone),
		Email:       nullStringToString(p.Email),
		Description: nullStringToString(p.Description),
		ImageURL:    nullStringToString(p.ImageURL),
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
	}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func stringArray(ss []string) pq.StringArray {
	return pq.StringArray(ss)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
