package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/PraneethShetty626/rapidcart/platform/observability"
	"github.com/PraneethShetty626/rapidcart/services/order/internal/service"
)

// CatalogHTTPClient реализует service.CatalogClient поверх REST API Catalog Service
type CatalogHTTPClient struct {
	logger     *zap.Logger
	baseURL    string
	httpClient *http.Client
}

// NewCatalogHTTPClient создаёт новый HTTP клиент для Catalog Service
func NewCatalogHTTPClient(logger *zap.Logger, baseURL string) *CatalogHTTPClient {
	return &CatalogHTTPClient{
		logger:  logger,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// productDTO повторяет формат ответа Catalog Service
type productDTO struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int32           `json:"stock"`
	Active bool            `json:"active"`
}

// stockDTO повторяет формат ответа проверки остатка
type stockDTO struct {
	ProductID         string `json:"productId"`
	HasStock          bool   `json:"hasStock"`
	AvailableStock    int32  `json:"availableStock"`
	RequestedQuantity int32  `json:"requestedQuantity"`
}

// GetProduct получает товар из Catalog Service
// 404 от каталога транслируется в ErrProductUnavailable
func (c *CatalogHTTPClient) GetProduct(ctx context.Context, productID string) (service.ProductInfo, error) {
	endpoint := c.baseURL + "/api/products/" + url.PathEscape(productID)

	resp, err := c.do(ctx, http.MethodGet, endpoint)
	if err != nil {
		return service.ProductInfo{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var dto productDTO
		if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
			return service.ProductInfo{}, fmt.Errorf("decode catalog response: %w", err)
		}
		return service.ProductInfo{
			ID:     dto.ID,
			Name:   dto.Name,
			Price:  dto.Price,
			Stock:  dto.Stock,
			Active: dto.Active,
		}, nil
	case http.StatusNotFound:
		return service.ProductInfo{}, fmt.Errorf("%w: product %s", service.ErrProductUnavailable, productID)
	default:
		return service.ProductInfo{}, c.unexpectedStatus(resp)
	}
}

// CheckStock проверяет доступность остатка через Catalog Service
func (c *CatalogHTTPClient) CheckStock(ctx context.Context, productID string, quantity int32) (bool, error) {
	endpoint := c.baseURL + "/api/products/" + url.PathEscape(productID) +
		"/stock?quantity=" + strconv.FormatInt(int64(quantity), 10)

	resp, err := c.do(ctx, http.MethodGet, endpoint)
	if err != nil {
		return false, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, c.unexpectedStatus(resp)
	}

	var dto stockDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return false, fmt.Errorf("decode stock response: %w", err)
	}
	return dto.HasStock, nil
}

// ReduceStock списывает остаток через Catalog Service
// 409 означает нехватку остатка, 404 отсутствие товара
func (c *CatalogHTTPClient) ReduceStock(ctx context.Context, productID string, quantity int32) error {
	endpoint := c.baseURL + "/api/products/" + url.PathEscape(productID) +
		"/reduce-stock?quantity=" + strconv.FormatInt(int64(quantity), 10)

	resp, err := c.do(ctx, http.MethodPut, endpoint)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: product %s, requested %d", service.ErrInsufficientStock, productID, quantity)
	case http.StatusNotFound:
		return fmt.Errorf("%w: product %s", service.ErrProductUnavailable, productID)
	default:
		return c.unexpectedStatus(resp)
	}
}

// do выполняет запрос с прокинутым trace context
func (c *CatalogHTTPClient) do(ctx context.Context, method, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}
	observability.InjectHTTP(ctx, req.Header)
	return c.httpClient.Do(req)
}

// unexpectedStatus формирует ошибку по неожиданному HTTP статусу
// Тело читается для диагностики, но не парсится
func (c *CatalogHTTPClient) unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	c.logger.Error("unexpected catalog response",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", body),
	)
	return fmt.Errorf("catalog returned unexpected status %d", resp.StatusCode)
}
