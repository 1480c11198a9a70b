package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PraneethShetty626/rapidcart/services/catalog/internal/repository/memory"
	"github.com/PraneethShetty626/rapidcart/services/catalog/internal/service"
)

// newTestRouter собирает полный стек catalog сервиса поверх in-memory репозитория
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := memory.NewMemoryRepository()
	svc := service.NewCatalogService(zap.NewNop(), repo)
	handler := NewHandler(svc, zap.NewNop())
	return NewRouter(handler, func() bool { return true }, zap.NewNop())
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

func createTestProduct(t *testing.T, router http.Handler, sku string, price string, stock int32) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/products", map[string]interface{}{
		"name":  "Product " + sku,
		"sku":   sku,
		"price": price,
		"stock": stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHandler_CreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		errorContains  string
	}{
		{
			name: "success: product created",
			body: map[string]interface{}{
				"name":  "Laptop",
				"sku":   "LAP-001",
				"price": "999.99",
				"stock": 10,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "error: missing name",
			body: map[string]interface{}{
				"sku":   "LAP-001",
				"price": "999.99",
				"stock": 10,
			},
			expectedStatus: http.StatusBadRequest,
			errorContains:  "name is required",
		},
		{
			name: "error: zero price",
			body: map[string]interface{}{
				"name":  "Laptop",
				"sku":   "LAP-001",
				"price": "0",
				"stock": 10,
			},
			expectedStatus: http.StatusBadRequest,
			errorContains:  "price must be positive",
		},
		{
			name: "error: negative stock",
			body: map[string]interface{}{
				"name":  "Laptop",
				"sku":   "LAP-001",
				"price": "999.99",
				"stock": -1,
			},
			expectedStatus: http.StatusBadRequest,
			errorContains:  "stock must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)

			rec := doJSON(t, router, http.MethodPost, "/api/products", tt.body)
			require.Equal(t, tt.expectedStatus, rec.Code)

			if tt.errorContains != "" {
				var errResp map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				require.Contains(t, errResp["message"], tt.errorContains)
				require.Equal(t, float64(tt.expectedStatus), errResp["status"])
				require.NotEmpty(t, errResp["timestamp"])
			}
		})
	}
}

func TestHandler_CreateProduct_DuplicateSKU(t *testing.T) {
	router := newTestRouter(t)

	createTestProduct(t, router, "LAP-001", "999.99", 10)

	rec := doJSON(t, router, http.MethodPost, "/api/products", map[string]interface{}{
		"name":  "Another laptop",
		"sku":   "LAP-001",
		"price": "899.99",
		"stock": 5,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_GetProduct(t *testing.T) {
	router := newTestRouter(t)
	id := createTestProduct(t, router, "LAP-001", "999.99", 10)

	rec := doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, id, resp.ID)
	require.Equal(t, "LAP-001", resp.SKU)

	rec = doJSON(t, router, http.MethodGet, "/api/products/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UpdateProduct(t *testing.T) {
	router := newTestRouter(t)
	id := createTestProduct(t, router, "LAP-001", "999.99", 10)

	rec := doJSON(t, router, http.MethodPut, "/api/products/"+id, map[string]interface{}{
		"name":  "Laptop v2",
		"sku":   "LAP-001",
		"price": "1099.99",
		"stock": 8,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, id, resp.ID)
	require.Equal(t, "Laptop v2", resp.Name)
	require.Equal(t, int32(8), resp.Stock)

	rec = doJSON(t, router, http.MethodPut, "/api/products/missing", map[string]interface{}{
		"name":  "Laptop v2",
		"sku":   "LAP-002",
		"price": "1099.99",
		"stock": 8,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteProduct(t *testing.T) {
	router := newTestRouter(t)
	id := createTestProduct(t, router, "LAP-001", "999.99", 10)

	rec := doJSON(t, router, http.MethodDelete, "/api/products/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Soft delete: товар больше не отдаётся в списке
	rec = doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Empty(t, listed)

	rec = doJSON(t, router, http.MethodDelete, "/api/products/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListProducts(t *testing.T) {
	router := newTestRouter(t)

	for i := 1; i <= 3; i++ {
		createTestProduct(t, router, fmt.Sprintf("SKU-%03d", i), "10.00", int32(i))
	}

	rec := doJSON(t, router, http.MethodGet, "/api/products?page=0&size=2&sortBy=sku&sortDir=asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	require.Equal(t, "SKU-001", listed[0].SKU)
	require.Equal(t, "SKU-002", listed[1].SKU)

	rec = doJSON(t, router, http.MethodGet, "/api/products?page=-1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_StockCheck(t *testing.T) {
	router := newTestRouter(t)
	id := createTestProduct(t, router, "LAP-001", "999.99", 10)

	tests := []struct {
		name              string
		productID         string
		query             string
		expectedStatus    int
		expectedHasStock  bool
		expectedAvailable float64
	}{
		{
			name:              "success: enough stock",
			productID:         id,
			query:             "quantity=3",
			expectedStatus:    http.StatusOK,
			expectedHasStock:  true,
			expectedAvailable: 10,
		},
		{
			name:             "success: insufficient stock",
			productID:        id,
			query:            "quantity=11",
			expectedStatus:   http.StatusOK,
			expectedHasStock: false,
		},
		{
			name:             "success: missing product is a negative answer",
			productID:        "missing",
			query:            "quantity=1",
			expectedStatus:   http.StatusOK,
			expectedHasStock: false,
		},
		{
			name:           "error: quantity is required",
			productID:      id,
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error: quantity must be positive",
			productID:      id,
			query:          "quantity=0",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/api/products/" + tt.productID + "/stock"
			if tt.query != "" {
				path += "?" + tt.query
			}

			rec := doJSON(t, router, http.MethodGet, path, nil)
			require.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tt.productID, resp["productId"])
			require.Equal(t, tt.expectedHasStock, resp["hasStock"])
			if tt.expectedHasStock {
				require.Equal(t, tt.expectedAvailable, resp["availableStock"])
			}
		})
	}
}

func TestHandler_ReduceStock(t *testing.T) {
	router := newTestRouter(t)
	id := createTestProduct(t, router, "LAP-001", "999.99", 10)

	// Успешное списание
	rec := doJSON(t, router, http.MethodPut, "/api/products/"+id+"/reduce-stock?quantity=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Остаток 6: списание 7 отклоняется с 409
	rec = doJSON(t, router, http.MethodPut, "/api/products/"+id+"/reduce-stock?quantity=7", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Остаток не изменился после отклонённого списания
	rec = doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int32(6), resp.Stock)

	// Несуществующий товар: 404, а не 409
	rec = doJSON(t, router, http.MethodPut, "/api/products/missing/reduce-stock?quantity=1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
