package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PraneethShetty626/rapidcart/services/order/internal/repository/memory"
	"github.com/PraneethShetty626/rapidcart/services/order/internal/service"
	"github.com/PraneethShetty626/rapidcart/services/order/internal/service/mocks"
)

// newTestRouter собирает стек order сервиса поверх in-memory репозитория.
// Catalog клиент и publisher подменяются моками, настройка остаётся за тестом
func newTestRouter(t *testing.T) (http.Handler, *mocks.CatalogClient, *mocks.OrderEventPublisher) {
	t.Helper()

	catalogClient := mocks.NewCatalogClient(t)
	publisher := mocks.NewOrderEventPublisher(t)
	repo := memory.NewMemoryRepository()
	svc := service.NewOrderService(zap.NewNop(), catalogClient, publisher, repo)
	handler := NewHandler(svc, zap.NewNop())
	return NewRouter(handler, func() bool { return true }, zap.NewNop()), catalogClient, publisher
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func laptopInfo() service.ProductInfo {
	return service.ProductInfo{
		ID:     "prod-1",
		Name:   "Laptop",
		Price:  decimal.RequireFromString("999.99"),
		Stock:  10,
		Active: true,
	}
}

func TestHandler_CreateOrder(t *testing.T) {
	t.Run("успех: заказ создан", func(t *testing.T) {
		// Arrange
		router, catalogClient, publisher := newTestRouter(t)
		catalogClient.On("GetProduct", mock.Anything, "prod-1").Return(laptopInfo(), nil)
		catalogClient.On("CheckStock", mock.Anything, "prod-1", int32(2)).Return(true, nil)
		catalogClient.On("ReduceStock", mock.Anything, "prod-1", int32(2)).Return(nil)
		publisher.On("PublishOrderCreated", mock.Anything, mock.AnythingOfType("service.OrderCreatedEvent")).Return(nil)

		// Act
		rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
			"productId":  "prod-1",
			"quantity":   2,
			"customerId": "cust-1",
		})

		// Assert
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.ID)
		require.Equal(t, "prod-1", resp.ProductID)
		require.Equal(t, "Laptop", resp.ProductName)
		require.Equal(t, "1999.98", resp.TotalPrice.String())
		require.Equal(t, "cust-1", resp.CustomerID)
	})

	t.Run("валидация: отсутствующие поля дают 400", func(t *testing.T) {
		tests := []struct {
			name string
			body map[string]interface{}
			msg  string
		}{
			{
				name: "без productId",
				body: map[string]interface{}{"quantity": 1, "customerId": "cust-1"},
				msg:  "productId is required",
			},
			{
				name: "quantity ноль",
				body: map[string]interface{}{"productId": "prod-1", "quantity": 0, "customerId": "cust-1"},
				msg:  "quantity must be >= 1",
			},
			{
				name: "без customerId",
				body: map[string]interface{}{"productId": "prod-1", "quantity": 1},
				msg:  "customerId is required",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router, catalogClient, _ := newTestRouter(t)

				rec := doJSON(t, router, http.MethodPost, "/api/orders", tt.body)

				require.Equal(t, http.StatusBadRequest, rec.Code)
				require.Contains(t, rec.Body.String(), tt.msg)
				catalogClient.AssertNotCalled(t, "GetProduct")
			})
		}
	})

	t.Run("товар не найден: 404", func(t *testing.T) {
		router, catalogClient, _ := newTestRouter(t)
		catalogClient.On("GetProduct", mock.Anything, "missing").Return(service.ProductInfo{}, service.ErrProductUnavailable)

		rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
			"productId":  "missing",
			"quantity":   1,
			"customerId": "cust-1",
		})

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Product unavailable")
	})

	t.Run("нехватка остатка: 400", func(t *testing.T) {
		router, catalogClient, _ := newTestRouter(t)
		catalogClient.On("GetProduct", mock.Anything, "prod-1").Return(laptopInfo(), nil)
		catalogClient.On("CheckStock", mock.Anything, "prod-1", int32(50)).Return(false, nil)

		rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
			"productId":  "prod-1",
			"quantity":   50,
			"customerId": "cust-1",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Insufficient stock")
	})

	t.Run("ошибка публикации: 502, заказ сохранён", func(t *testing.T) {
		router, catalogClient, publisher := newTestRouter(t)
		catalogClient.On("GetProduct", mock.Anything, "prod-1").Return(laptopInfo(), nil)
		catalogClient.On("CheckStock", mock.Anything, "prod-1", int32(1)).Return(true, nil)
		catalogClient.On("ReduceStock", mock.Anything, "prod-1", int32(1)).Return(nil)
		publisher.On("PublishOrderCreated", mock.Anything, mock.AnythingOfType("service.OrderCreatedEvent")).
			Return(service.ErrPublishFailed)

		rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
			"productId":  "prod-1",
			"quantity":   1,
			"customerId": "cust-1",
		})

		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Contains(t, rec.Body.String(), "Messaging failure")

		// Заказ остался в хранилище несмотря на сбой публикации
		recList := doJSON(t, router, http.MethodGet, "/api/orders/customer/cust-1", nil)
		require.Equal(t, http.StatusOK, recList.Code)

		var orders []OrderResponse
		require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &orders))
		require.Len(t, orders, 1)
	})
}

func createTestOrder(t *testing.T, router http.Handler, catalogClient *mocks.CatalogClient, publisher *mocks.OrderEventPublisher, customerID string) OrderResponse {
	t.Helper()

	catalogClient.On("GetProduct", mock.Anything, "prod-1").Return(laptopInfo(), nil).Once()
	catalogClient.On("CheckStock", mock.Anything, "prod-1", int32(1)).Return(true, nil).Once()
	catalogClient.On("ReduceStock", mock.Anything, "prod-1", int32(1)).Return(nil).Once()
	publisher.On("PublishOrderCreated", mock.Anything, mock.AnythingOfType("service.OrderCreatedEvent")).Return(nil).Once()

	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"productId":  "prod-1",
		"quantity":   1,
		"customerId": customerID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_GetOrder(t *testing.T) {
	router, catalogClient, publisher := newTestRouter(t)
	created := createTestOrder(t, router, catalogClient, publisher, "cust-1")

	t.Run("существующий заказ", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/orders/"+created.ID, nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, created.ID, resp.ID)
	})

	t.Run("несуществующий заказ даёт 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/orders/no-such-id", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Resource not found")
	})
}

func TestHandler_ListOrders(t *testing.T) {
	router, catalogClient, publisher := newTestRouter(t)
	createTestOrder(t, router, catalogClient, publisher, "cust-1")
	createTestOrder(t, router, catalogClient, publisher, "cust-1")
	createTestOrder(t, router, catalogClient, publisher, "cust-2")

	t.Run("список с пагинацией", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/orders?page=0&size=2", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var orders []OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		require.Len(t, orders, 2)
	})

	t.Run("некорректный page даёт 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/orders?page=-1", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("заказы клиента", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/orders/customer/cust-2", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var orders []OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		require.Len(t, orders, 1)
		require.Equal(t, "cust-2", orders[0].CustomerID)
	})

	t.Run("клиент без заказов получает пустой список", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/orders/customer/nobody", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestParseListParams_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)

	params, msg := parseListParams(req)

	require.Empty(t, msg)
	require.Equal(t, 0, params.Page)
	require.Equal(t, 10, params.Size)
	require.Equal(t, "id", params.SortBy)
	require.Equal(t, "asc", params.SortDir)
}

func TestHandler_Health(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}
