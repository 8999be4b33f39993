package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"salepoint/internal/catalog"
	"salepoint/internal/logger"
)

type httpGateway struct {
	baseURL       string
	httpClient    *http.Client
	searchLimiter *rate.Limiter
}

// NewHTTP builds the REST client for the collaborator API. Catalog searches
// go through a client-side limiter so a chatty UI cannot hammer the search
// endpoint even if the debouncer is bypassed.
func NewHTTP(baseURL string, timeout time.Duration, searchRatePerSec float64, searchBurst int) Gateway {
	if baseURL == "" {
		logger.L().Warn("collaborator API base URL is empty")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if searchRatePerSec <= 0 {
		searchRatePerSec = 20
	}
	if searchBurst <= 0 {
		searchBurst = 40
	}

	return &httpGateway{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: timeout},
		searchLimiter: rate.NewLimiter(rate.Limit(searchRatePerSec), searchBurst),
	}
}

// do issues one JSON request and returns the raw body of a 2xx response;
// anything else becomes an error carrying the collaborator's detail message.
func (g *httpGateway) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read collaborator response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp.StatusCode, bodyBytes)
	}

	return bodyBytes, nil
}

// ----------------- SearchProducts -----------------

type productDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	UnitPrice     int64  `json:"unit_price"`
	StockQuantity int    `json:"stock_quantity"`
}

func (g *httpGateway) SearchProducts(ctx context.Context, term string) ([]catalog.Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("term", term))

	if err := g.searchLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := g.do(ctx, http.MethodGet, "/products?search="+url.QueryEscape(term), nil)
	if err != nil {
		log.Error("product search failed", zap.Error(err))
		return nil, err
	}

	var res struct {
		Data []productDTO `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		log.Error("failed decoding product search response", zap.Error(err))
		return nil, err
	}

	products := make([]catalog.Product, 0, len(res.Data))
	for _, d := range res.Data {
		products = append(products, catalog.Product{
			ID:            d.ID,
			Name:          d.Name,
			Unit:          d.Unit,
			UnitPrice:     d.UnitPrice,
			StockQuantity: d.StockQuantity,
		})
	}

	log.Debug("product search completed", zap.Int("count", len(products)))
	return products, nil
}

// ----------------- CreateOrderHeader -----------------

func (g *httpGateway) CreateOrderHeader(ctx context.Context, in HeaderInput) (int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int64("staff_id", in.StaffID),
		zap.Int64("customer_id", in.CustomerID),
		zap.String("order_status", in.OrderStatus),
	)

	log.Info("creating order header")

	body, err := g.do(ctx, http.MethodPost, "/sales-orders", in)
	if err != nil {
		log.Error("order header creation failed", zap.Error(err))
		return 0, err
	}

	var res struct {
		OrderID int64 `json:"order_id"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		log.Error("failed decoding order header response", zap.Error(err))
		return 0, err
	}

	log.Info("order header created", zap.Int64("order_id", res.OrderID))
	return res.OrderID, nil
}

// ----------------- AddOrderLine -----------------

func (g *httpGateway) AddOrderLine(ctx context.Context, in LineInput) error {
	log := logger.FromCtx(ctx).With(
		zap.Int64("order_id", in.OrderID),
		zap.Int64("product_id", in.ProductID),
		zap.Int("quantity", in.Quantity),
	)

	if _, err := g.do(ctx, http.MethodPost, "/sales-orders/items", in); err != nil {
		log.Error("order line submission failed", zap.Error(err))
		return err
	}

	log.Info("order line submitted")
	return nil
}

// ----------------- GetOrderDetail -----------------

func (g *httpGateway) GetOrderDetail(ctx context.Context, orderID int64) (*OrderDetail, error) {
	log := logger.FromCtx(ctx).With(zap.Int64("order_id", orderID))

	body, err := g.do(ctx, http.MethodGet, fmt.Sprintf("/sales-orders/%d", orderID), nil)
	if err != nil {
		log.Error("fetching order detail failed", zap.Error(err))
		return nil, err
	}

	var detail OrderDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		log.Error("failed decoding order detail", zap.Error(err))
		return nil, err
	}

	return &detail, nil
}

// ----------------- ListOrders -----------------

func (g *httpGateway) ListOrders(ctx context.Context, filter ListFilter) ([]OrderSummary, error) {
	log := logger.FromCtx(ctx)

	q := url.Values{}
	if filter.CustomerID != nil {
		q.Set("customer_id", strconv.FormatInt(*filter.CustomerID, 10))
	}
	if filter.StaffID != nil {
		q.Set("staff_id", strconv.FormatInt(*filter.StaffID, 10))
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}

	path := "/sales-orders"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	body, err := g.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		log.Error("listing orders failed", zap.Error(err))
		return nil, err
	}

	var res struct {
		Data []OrderSummary `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		log.Error("failed decoding order list", zap.Error(err))
		return nil, err
	}

	return res.Data, nil
}

// ----------------- UpdateOrderStatus -----------------

func (g *httpGateway) UpdateOrderStatus(ctx context.Context, orderID int64, in StatusInput) error {
	log := logger.FromCtx(ctx).With(
		zap.Int64("order_id", orderID),
		zap.String("order_status", in.OrderStatus),
	)

	if _, err := g.do(ctx, http.MethodPut, fmt.Sprintf("/sales-orders/%d/status", orderID), in); err != nil {
		log.Error("order status update failed", zap.Error(err))
		return err
	}

	log.Info("order status updated")
	return nil
}
