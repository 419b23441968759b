package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var orderColumns = []string{
	"id", "customer_id", "pharmacy_id", "pharmacy_name", "total_amount",
	"status", "created_at", "updated_at", "shipping_address",
	"payment_method", "tracking_number",
}

var orderItemColumns = []string{
	"order_id", "medicine_id", "medicine_name", "quantity", "price",
}

type postgresOrderRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresOrderRepo(db *sqlx.DB) *postgresOrderRepo {
	return &postgresOrderRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresOrderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID, o.CustomerID, o.PharmacyID, o.PharmacyName, o.TotalAmount,
			o.Status.String(), o.CreatedAt, o.UpdatedAt, o.ShippingAddress,
			o.PaymentMethod, nullString(o.TrackingNumber),
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *postgresOrderRepo) SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns(orderItemColumns...).
		Suffix("ON CONFLICT (order_id, medicine_id) DO NOTHING")

	for _, it := range items {
		q = q.Values(orderID, it.MedicineID, it.MedicineName, it.Quantity, it.Price)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

func (r *postgresOrderRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsFor(ctx, []string{orderID})
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, items[orderID]), nil
}

func (r *postgresOrderRepo) OrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	return r.listOrders(ctx, sq.Eq{"customer_id": customerID}, 0)
}

func (r *postgresOrderRepo) OrdersByPharmacy(ctx context.Context, pharmacyID string) ([]entities.Order, error) {
	return r.listOrders(ctx, sq.Eq{"pharmacy_id": pharmacyID}, 0)
}

func (r *postgresOrderRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	return r.listOrders(ctx, nil, uint64(count))
}

func (r *postgresOrderRepo) UpdateOrderStatus(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Update("orders").
		Set("status", o.Status.String()).
		Set("updated_at", o.UpdatedAt).
		Set("tracking_number", nullString(o.TrackingNumber)).
		Where(sq.Eq{"id": o.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

func (r *postgresOrderRepo) listOrders(ctx context.Context, where any, limit uint64) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")
	if where != nil {
		q = q.Where(where)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	query, args := q.MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	itemsMap, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, itemsMap[o.ID]))
	}
	return result, nil
}

func (r *postgresOrderRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]OrderItem, error) {
	query, args := r.qb.Select(orderItemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}

	itemsMap := make(map[string][]OrderItem, len(orderIDs))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}
	return itemsMap, nil
}

func (r *postgresOrderRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresOrderRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresOrderRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
