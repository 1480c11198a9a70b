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
	"github.com/PraneethShetty626/rapidcart/services/order/internal/repository"
	"github.com/PraneethShetty626/rapidcart/services/order/internal/service"
)

// Handler содержит HTTP-обработчики Order Service
type Handler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(orderService *service.OrderService, logger *zap.Logger) *Handler {
	return &Handler{
		orderService: orderService,
		logger:       logger,
	}
}

// CreateOrderRequest представляет HTTP запрос на создание заказа
// Поля-указатели позволяют отличить отсутствующее поле от нулевого значения
type CreateOrderRequest struct {
	ProductID  *string `json:"productId"`
	Quantity   *int32  `json:"quantity"`
	CustomerID *string `json:"customerId"`
}

// validate проверяет обязательные поля запроса
// Возвращает описание первой ошибки или пустую строку
func (req CreateOrderRequest) validate() string {
	if req.ProductID == nil || *req.ProductID == "" {
		return "productId is required"
	}
	if req.Quantity == nil || *req.Quantity < 1 {
		return "quantity must be >= 1"
	}
	if req.CustomerID == nil || *req.CustomerID == "" {
		return "customerId is required"
	}
	return ""
}

// OrderResponse представляет HTTP ответ с информацией о заказе
type OrderResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int32           `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CustomerID  string          `json:"customerId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toOrderResponse(order repository.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		ProductID:   order.ProductID,
		ProductName: order.ProductName,
		UnitPrice:   order.UnitPrice,
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
		CustomerID:  order.CustomerID,
		CreatedAt:   order.CreatedAt,
	}
}

// PostOrders обрабатывает POST /api/orders - создание заказа
func (h *Handler) PostOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := observability.L(ctx, h.logger)

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, "Validation failed", msg)
		return
	}

	order, err := h.orderService.CreateOrder(ctx, service.CreateOrderInput{
		CustomerID: *req.CustomerID,
		ProductID:  *req.ProductID,
		Quantity:   *req.Quantity,
	})
	if err != nil {
		log.Error("order creation error", zap.Error(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// GetOrdersId обрабатывает GET /api/orders/{id}
func (h *Handler) GetOrdersId(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// GetOrders обрабатывает GET /api/orders - постраничный список заказов
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, msg := parseListParams(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, "Validation failed", msg)
		return
	}

	orders, err := h.orderService.ListOrders(ctx, params)
	if err != nil {
		observability.L(ctx, h.logger).Error("order list error", zap.Error(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// GetOrdersByCustomer обрабатывает GET /api/orders/customer/{customerId}
// Заказы отдаются новыми первыми
func (h *Handler) GetOrdersByCustomer(w http.ResponseWriter, r *http.Request, customerID string) {
	orders, err := h.orderService.ListCustomerOrders(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func toOrderResponses(orders []repository.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	return resp
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

// writeServiceError транслирует ошибки service слоя в HTTP статусы
// Нехватка остатка ловится до создания заказа, поэтому для клиента это 400
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductUnavailable):
		writeError(w, http.StatusNotFound, "Product unavailable", err.Error())
	case errors.Is(err, service.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, "Insufficient stock", err.Error())
	case errors.Is(err, service.ErrPublishFailed):
		writeError(w, http.StatusBadGateway, "Messaging failure", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found", err.Error())
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
