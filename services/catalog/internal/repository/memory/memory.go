package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PraneethShetty626/rapidcart/services/catalog/internal/repository"
)

// MemoryRepository реализует ProductRepository используя in-memory хранилище
// Используется для разработки и тестирования
// Защищён мьютексом для безопасного доступа из разных горутин
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[string]repository.Product
}

// NewMemoryRepository создаёт новый in-memory репозиторий
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products: make(map[string]repository.Product),
	}
}

// Create сохраняет новый товар
// Проверяет уникальность SKU среди всех записей
func (r *MemoryRepository) Create(ctx context.Context, product repository.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			return fmt.Errorf("%w: sku %q already exists", repository.ErrConflict, product.SKU)
		}
	}

	r.products[product.ID] = product
	return nil
}

// GetByID получает товар по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return repository.Product{}, repository.ErrNotFound
	}
	return product, nil
}

// Update обновляет существующий товар
func (r *MemoryRepository) Update(ctx context.Context, product repository.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		return repository.ErrNotFound
	}
	for id, existing := range r.products {
		if id != product.ID && existing.SKU == product.SKU {
			return fmt.Errorf("%w: sku %q already exists", repository.ErrConflict, product.SKU)
		}
	}

	r.products[product.ID] = product
	return nil
}

// SoftDelete помечает товар неактивным, запись остаётся в хранилище
func (r *MemoryRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[id]
	if !exists {
		return repository.ErrNotFound
	}

	product.Active = false
	product.UpdatedAt = time.Now().UTC()
	r.products[id] = product
	return nil
}

// List возвращает страницу активных товаров с сортировкой
func (r *MemoryRepository) List(ctx context.Context, params repository.ListParams) ([]repository.Product, error) {
	r.mu.RLock()
	active := make([]repository.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Active {
			active = append(active, p)
		}
	}
	r.mu.RUnlock()

	// Для desc сравниваем в обратном порядке: отрицание нарушает строгость при равных ключах
	desc := strings.EqualFold(params.SortDir, "desc")
	sort.Slice(active, func(i, j int) bool {
		if desc {
			return lessBy(params.SortBy, active[j], active[i])
		}
		return lessBy(params.SortBy, active[i], active[j])
	})

	start := params.Page * params.Size
	if start >= len(active) {
		return []repository.Product{}, nil
	}
	end := start + params.Size
	if end > len(active) {
		end = len(active)
	}
	return active[start:end], nil
}

// ReduceStock атомарно уменьшает остаток товара
// Проверка остатка и запись выполняются под одним мьютексом,
// поэтому конкурентные вызовы не могут увести остаток в минус
func (r *MemoryRepository) ReduceStock(ctx context.Context, id string, quantity int32) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[id]
	if !exists {
		return false, repository.ErrNotFound
	}

	if product.Stock < quantity {
		return false, nil
	}

	product.Stock -= quantity
	product.UpdatedAt = time.Now().UTC()
	r.products[id] = product
	return true, nil
}

// lessBy сравнивает два товара по полю сортировки
// Неизвестное поле трактуется как id
func lessBy(sortBy string, a, b repository.Product) bool {
	switch sortBy {
	case "name":
		return a.Name < b.Name
	case "sku":
		return a.SKU < b.SKU
	case "price":
		return a.Price.LessThan(b.Price)
	case "stock":
		return a.Stock < b.Stock
	default:
		return a.ID < b.ID
	}
}
