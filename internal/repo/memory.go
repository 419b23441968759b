package repo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
)

// MemoryStore is the in-process storage driver. It implements the same
// repository contracts as the postgres implementations and backs demo
// mode and tests. Values are copied on the way in and out so callers
// never share state with the store.
type MemoryStore struct {
	mu         sync.RWMutex
	orders     map[string]entities.Order
	medicines  map[string]entities.Medicine
	pharmacies map[string]entities.Pharmacy
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:     make(map[string]entities.Order),
		medicines:  make(map[string]entities.Medicine),
		pharmacies: make(map[string]entities.Pharmacy),
	}
}

func (m *MemoryStore) SaveOrder(_ context.Context, o entities.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.orders[o.ID]; ok {
		// insert is idempotent, keep the first write
		o.Items = existing.Items
		return nil
	}
	o.Items = copyItems(o.Items)
	m.orders[o.ID] = o
	return nil
}

func (m *MemoryStore) SaveItems(_ context.Context, orderID string, items []entities.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	if len(o.Items) == 0 {
		o.Items = copyItems(items)
		m.orders[orderID] = o
	}
	return nil
}

func (m *MemoryStore) GetOrderByID(_ context.Context, orderID string) (entities.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[orderID]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	o.Items = copyItems(o.Items)
	return o, nil
}

func (m *MemoryStore) OrdersByCustomer(_ context.Context, customerID string) ([]entities.Order, error) {
	return m.filterOrders(func(o entities.Order) bool { return o.CustomerID == customerID }), nil
}

func (m *MemoryStore) OrdersByPharmacy(_ context.Context, pharmacyID string) ([]entities.Order, error) {
	return m.filterOrders(func(o entities.Order) bool { return o.PharmacyID == pharmacyID }), nil
}

func (m *MemoryStore) LatestOrders(_ context.Context, count int) ([]entities.Order, error) {
	orders := m.filterOrders(func(entities.Order) bool { return true })
	if count > 0 && len(orders) > count {
		orders = orders[:count]
	}
	return orders, nil
}

func (m *MemoryStore) UpdateOrderStatus(_ context.Context, o entities.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[o.ID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	stored.Status = o.Status
	stored.UpdatedAt = o.UpdatedAt
	stored.TrackingNumber = o.TrackingNumber
	m.orders[o.ID] = stored
	return nil
}

func (m *MemoryStore) filterOrders(keep func(entities.Order) bool) []entities.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entities.Order, 0)
	for _, o := range m.orders {
		if keep(o) {
			o.Items = copyItems(o.Items)
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *MemoryStore) Medicines(_ context.Context) ([]entities.Medicine, error) {
	return m.filterMedicines(func(entities.Medicine) bool { return true }), nil
}

func (m *MemoryStore) MedicineByID(_ context.Context, id string) (entities.Medicine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	med, ok := m.medicines[id]
	if !ok {
		return entities.Medicine{}, entities.ErrMedicineNotFound
	}
	return med, nil
}

func (m *MemoryStore) MedicinesByCategory(_ context.Context, category string) ([]entities.Medicine, error) {
	return m.filterMedicines(func(med entities.Medicine) bool { return med.Category == category }), nil
}

func (m *MemoryStore) SearchMedicines(_ context.Context, query string) ([]entities.Medicine, error) {
	return m.filterMedicines(func(med entities.Medicine) bool {
		return containsIgnoreCase(med.Name, query) ||
			containsIgnoreCase(med.Description, query) ||
			containsIgnoreCase(med.Category, query)
	}), nil
}

func (m *MemoryStore) CreateMedicine(_ context.Context, med entities.Medicine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.medicines[med.ID] = med
	return nil
}

func (m *MemoryStore) UpdateMedicineStock(_ context.Context, id string, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	med, ok := m.medicines[id]
	if !ok {
		return entities.ErrMedicineNotFound
	}
	med.Stock = stock
	m.medicines[id] = med
	return nil
}

func (m *MemoryStore) filterMedicines(keep func(entities.Medicine) bool) []entities.Medicine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entities.Medicine, 0)
	for _, med := range m.medicines {
		if keep(med) {
			out = append(out, med)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *MemoryStore) Pharmacies(_ context.Context) ([]entities.Pharmacy, error) {
	return m.filterPharmacies(func(entities.Pharmacy) bool { return true }), nil
}

func (m *MemoryStore) PharmacyByID(_ context.Context, id string) (entities.Pharmacy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pharmacies[id]
	if !ok {
		return entities.Pharmacy{}, entities.ErrPharmacyNotFound
	}
	return p, nil
}

func (m *MemoryStore) SearchPharmacies(_ context.Context, query string) ([]entities.Pharmacy, error) {
	return m.filterPharmacies(func(p entities.Pharmacy) bool {
		return containsIgnoreCase(p.Name, query) ||
			containsIgnoreCase(p.Address, query) ||
			containsIgnoreCase(p.Description, query)
	}), nil
}

func (m *MemoryStore) AddPharmacy(p entities.Pharmacy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pharmacies[p.ID] = p
}

func (m *MemoryStore) filterPharmacies(keep func(entities.Pharmacy) bool) []entities.Pharmacy {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entities.Pharmacy, 0)
	for _, p := range m.pharmacies {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func copyItems(items []entities.OrderItem) []entities.OrderItem {
	if items == nil {
		return nil
	}
	cp := make([]entities.OrderItem, len(items))
	copy(cp, items)
	return cp
}

func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
