package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/PraneethShetty626/rapidcart/services/order/internal/repository"
)

// MemoryRepository реализует OrderRepository используя in-memory хранилище
// Используется для разработки и тестирования
// Защищён мьютексом для безопасного доступа из разных горутин
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]repository.Order
}

// NewMemoryRepository создаёт новый in-memory репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[string]repository.Order),
	}
}

// Create сохраняет заказ в памяти
func (r *MemoryRepository) Create(ctx context.Context, order repository.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order
	return nil
}

// GetByID получает заказ по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (repository.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return repository.Order{}, repository.ErrNotFound
	}
	return order, nil
}

// List возвращает страницу заказов с сортировкой
func (r *MemoryRepository) List(ctx context.Context, params repository.ListParams) ([]repository.Order, error) {
	r.mu.RLock()
	all := make([]repository.Order, 0, len(r.orders))
	for _, order := range r.orders {
		all = append(all, order)
	}
	r.mu.RUnlock()

	// Для desc сравниваем в обратном порядке: отрицание нарушает строгость при равных ключах
	desc := strings.EqualFold(params.SortDir, "desc")
	sort.Slice(all, func(i, j int) bool {
		if desc {
			return lessBy(params.SortBy, all[j], all[i])
		}
		return lessBy(params.SortBy, all[i], all[j])
	})

	start := params.Page * params.Size
	if start >= len(all) {
		return []repository.Order{}, nil
	}
	end := start + params.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// ListByCustomer возвращает заказы покупателя, новые первыми
func (r *MemoryRepository) ListByCustomer(ctx context.Context, customerID string) ([]repository.Order, error) {
	r.mu.RLock()
	matched := make([]repository.Order, 0)
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			matched = append(matched, order)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// lessBy сравнивает два заказа по полю сортировки
// Неизвестное поле трактуется как created_at
func lessBy(sortBy string, a, b repository.Order) bool {
	switch sortBy {
	case "id":
		return a.ID < b.ID
	case "totalPrice":
		return a.TotalPrice.LessThan(b.TotalPrice)
	case "customerId":
		return a.CustomerID < b.CustomerID
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
