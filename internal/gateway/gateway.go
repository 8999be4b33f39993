package gateway

import (
	"context"
	"time"

	"salepoint/internal/catalog"
)

// Gateway is the collaborator order-management API this client consumes. The
// core is agnostic to how the collaborator persists anything; only these
// operation shapes and their error signaling matter.
type Gateway interface {
	SearchProducts(ctx context.Context, term string) ([]catalog.Product, error)
	CreateOrderHeader(ctx context.Context, in HeaderInput) (int64, error)
	AddOrderLine(ctx context.Context, in LineInput) error
	GetOrderDetail(ctx context.Context, orderID int64) (*OrderDetail, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]OrderSummary, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, in StatusInput) error
}

// HeaderInput creates the order header before any line is attached.
type HeaderInput struct {
	StaffID         int64  `json:"staff_id"`
	CustomerID      int64  `json:"customer_id"`
	DeliveryAddress string `json:"delivery_address"`
	OrderStatus     string `json:"order_status"`
	PaymentStatus   string `json:"payment_status"`
}

// LineInput attaches one sold product to an existing order header.
// ReferenceID is a client-generated id so the collaborator can deduplicate a
// retried submission.
type LineInput struct {
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   int64   `json:"unit_price_at_sale"`
	Discount    float64 `json:"discount"`
	ReferenceID string  `json:"reference_id"`
}

// StatusInput updates an order's status pair, the manual reconciliation path
// for orders left incomplete by a partial line-submission failure.
type StatusInput struct {
	OrderStatus   string  `json:"order_status"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

type OrderSummary struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name"`
	StaffName     string    `json:"staff_name"`
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
	OrderedAt     time.Time `json:"ordered_at"`
}

type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"product_name"`
	Unit      string  `json:"unit"`
	Quantity  int     `json:"quantity"`
	UnitPrice int64   `json:"unit_price_at_sale"`
	Discount  float64 `json:"discount"`
}

// OrderDetail is the collaborator's view of a committed order, tax computed
// server-side.
type OrderDetail struct {
	OrderSummary
	Items    []OrderItem `json:"items"`
	Subtotal int64       `json:"subtotal"`
	Tax      int64       `json:"tax"`
	Total    int64       `json:"total"`
}

type ListFilter struct {
	CustomerID *int64
	StaffID    *int64
	Status     string
}
