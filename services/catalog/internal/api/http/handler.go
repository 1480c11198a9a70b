package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/PraneethShetty626/rapidcart/platform/observability"
	"github.com/PraneethShetty626/rapidcart/services/catalog/internal/repository"
	"github.com/PraneethShetty626/rapidcart/services/catalog/internal/service"
)

// Handler содержит HTTP-обработчики Catalog Service
// Зависит от service слоя, но не знает о деталях реализации (БД и т.д.)
type Handler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(catalogService *service.CatalogService, logger *zap.Logger) *Handler {
	return &Handler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ProductRequest представляет HTTP запрос на создание/обновление товара
// Поля-указатели позволяют отличить отсутствующее поле от нулевого значения
type ProductRequest struct {
	Name   *string          `json:"name"`
	SKU    *string          `json:"sku"`
	Price  *decimal.Decimal `json:"price"`
	Stock  *int32           `json:"stock"`
	Active *bool            `json:"active"`
}

// ProductResponse представляет HTTP ответ с информацией о товаре
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int32           `json:"stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toProductResponse(p repository.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		Stock:     p.Stock,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// validate проверяет обязательные поля запроса
// Возвращает описание первой ошибки или пустую строку
func (req ProductRequest) validate() string {
	if req.Name == nil || *req.Name == "" {
		return "name is required"
	}
	if req.SKU == nil || *req.SKU == "" {
		return "sku is required"
	}
	if req.Price == nil || !req.Price.IsPositive() {
		return "price must be positive"
	}
	if req.Stock == nil || *req.Stock < 0 {
		return "stock must be >= 0"
	}
	return ""
}

// PostProducts обрабатывает POST /api/products - создание товара
func (h *Handler) PostProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := observability.L(ctx, h.logger)

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, "Validation failed", msg)
		return
	}

	product, err := h.catalogService.CreateProduct(ctx, service.CreateProductInput{
		Name:   *req.Name,
		SKU:    *req.SKU,
		Price:  *req.Price,
		Stock:  *req.Stock,
		Active: req.Active,
	})
	if err != nil {
		log.Error("product creation error", zap.Error(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// GetProducts обрабатывает GET /api/products - постраничный список активных товаров
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, msg := parseListParams(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, "Validation failed", msg)
		return
	}

	products, err := h.catalogService.ListProducts(ctx, params)
	if err != nil {
		observability.L(ctx, h.logger).Error("product list error", zap.Error(err))
		writeServiceError(w, err)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProductsId обрабатывает GET /api/products/{id}
func (h *Handler) GetProductsId(w http.ResponseWriter, r *http.Request, id string) {
	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// PutProductsId обрабатывает PUT /api/products/{id} - полное обновление товара
func (h *Handler) PutProductsId(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, "Validation failed", msg)
		return
	}

	product, err := h.catalogService.UpdateProduct(ctx, id, service.CreateProductInput{
		Name:   *req.Name,
		SKU:    *req.SKU,
		Price:  *req.Price,
		Stock:  *req.Stock,
		Active: req.Active,
	})
	if err != nil {
		observability.L(ctx, h.logger).Error("product update error", zap.Error(err), zap.String("product_id", id))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// DeleteProductsId обрабатывает DELETE /api/products/{id} - soft delete
func (h *Handler) DeleteProductsId(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProductsIdStock обрабатывает GET /api/products/{id}/stock?quantity=N
// Проверка доступности остатка для Order Service
// Отсутствующий товар отдаёт hasStock=false, а не 404
func (h *Handler) GetProductsIdStock(w http.ResponseWriter, r *http.Request, id string) {
	quantity, msg := parseQuantity(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, "Validation failed", msg)
		return
	}

	hasStock, available, err := h.catalogService.HasStock(r.Context(), id, quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !hasStock {
		available = 0
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"productId":         id,
		"hasStock":          hasStock,
		"availableStock":    available,
		"requestedQuantity": quantity,
	})
}

// PutProductsIdReduceStock обрабатывает PUT /api/products/{id}/reduce-stock?quantity=N
// Атомарное списание остатка после подтверждённого заказа
func (h *Handler) PutProductsIdReduceStock(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	quantity, msg := parseQuantity(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, "Validation failed", msg)
		return
	}

	success, err := h.catalogService.ReduceStock(ctx, id, quantity)
	if err != nil {
		observability.L(ctx, h.logger).Error("stock reduction error", zap.Error(err), zap.String("product_id", id))
		writeServiceError(w, err)
		return
	}

	if !success {
		writeError(w, http.StatusConflict, "Insufficient stock", "not enough stock to reduce")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Stock reduced successfully"})
}

// parseListParams разбирает query-параметры пагинации
func parseListParams(r *http.Request) (repository.ListParams, string) {
	params := repository.ListParams{
		Page:    0,
		Size:    10,
		SortBy:  "id",
		SortDir: "asc",
	}

	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return params, "page must be >= 0"
		}
		params.Page = page
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return params, "size must be >= 1"
		}
		params.Size = size
	}
	if v := q.Get("sortBy"); v != "" {
		params.SortBy = v
	}
	if v := q.Get("sortDir"); v != "" {
		params.SortDir = v
	}
	return params, ""
}

// parseQuantity разбирает обязательный query-параметр quantity (>= 1)
func parseQuantity(r *http.Request) (int32, string) {
	v := r.URL.Query().Get("quantity")
	if v == "" {
		return 0, "quantity is required"
	}
	quantity, err := strconv.ParseInt(v, 10, 32)
	if err != nil || quantity < 1 {
		return 0, "quantity must be >= 1"
	}
	return int32(quantity), ""
}

// writeServiceError транслирует ошибки service слоя в HTTP статусы
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found", err.Error())
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "Conflict", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

// writeError пишет структурированный JSON с ошибкой
// Формат: {timestamp, status, error, message}
func writeError(w http.ResponseWriter, status int, errText, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    status,
		"error":     errText,
		"message":   message,
	})
}

// writeJSON пишет успешный JSON ответ
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
