package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salepoint/internal/cart"
	"salepoint/internal/catalog"
	"salepoint/internal/checkout"
	"salepoint/internal/config"
	"salepoint/internal/gateway"
	"salepoint/internal/logger"
	"salepoint/internal/pricing"
	"salepoint/internal/receipt"
)

// Session owns the single mutable cart of one operator checkout session and
// hands it to both the product-browsing side and the checkout side. It is
// the injected alternative to a module-level singleton: create one per
// session, pass it to every view.
type Session struct {
	id       string
	gw       gateway.Gateway
	cart     *cart.Store
	engine   *pricing.Engine
	searcher *catalog.Searcher
	orch     *checkout.Orchestrator
	renderer *receipt.Renderer
	defaults checkout.HeaderOptions
}

// CheckoutResult couples the confirmed submission with its best-effort
// receipt artifact. ReceiptPNG is nil when rendering failed; the order is
// committed either way.
type CheckoutResult struct {
	*checkout.Result
	ReceiptNumber string
	ReceiptPNG    []byte
}

func New(cfg *config.Config, gw gateway.Gateway, onResults catalog.ResultFunc) (*Session, error) {
	store := cart.NewStore()
	engine := pricing.NewEngine(pricing.Policy{
		VATRateBP:    cfg.VATRateBP,
		SurtaxRateBP: cfg.SurtaxRateBP,
	})

	searcher, err := catalog.NewSearcher(gw, cfg.SearchDebounce, cfg.CatalogCacheSize, onResults)
	if err != nil {
		return nil, fmt.Errorf("build catalog searcher: %w", err)
	}

	return &Session{
		id:       uuid.NewString(),
		gw:       gw,
		cart:     store,
		engine:   engine,
		searcher: searcher,
		orch:     checkout.NewOrchestrator(gw, store, engine),
		renderer: receipt.NewRenderer("", ""),
		defaults: checkout.HeaderOptions{
			StaffID:         cfg.StaffID,
			CustomerID:      cfg.CustomerID,
			DeliveryAddress: cfg.DeliveryAddress,
			OrderStatus:     cfg.OrderStatus,
			PaymentStatus:   cfg.PaymentStatus,
		},
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) ctx(ctx context.Context) context.Context {
	return logger.WithSessionID(ctx, s.id)
}

// Search schedules a debounced catalog query; results arrive on the
// session's result callback.
func (s *Session) Search(ctx context.Context, term string) error {
	return s.searcher.Search(s.ctx(ctx), term)
}

func (s *Session) AddOrSetQuantity(p catalog.Product, quantity int) error {
	return s.cart.AddOrSetQuantity(p, quantity)
}

func (s *Session) Adjust(productID int64, delta int) error {
	return s.cart.Adjust(productID, delta)
}

func (s *Session) Remove(productID int64) {
	s.cart.Remove(productID)
}

func (s *Session) Lines() []cart.Line {
	return s.cart.Lines()
}

// Quote recomputes the full pricing breakdown for the current cart.
func (s *Session) Quote() pricing.Breakdown {
	return s.engine.Quote(s.cart.Lines())
}

func (s *Session) Status() checkout.Status {
	return s.orch.Status()
}

// Checkout commits the cart through the two-step submission and then renders
// the receipt from the pre-clear snapshot. Receipt rendering is best-effort:
// its failure is logged and the checkout still reports success.
func (s *Session) Checkout(ctx context.Context) (*CheckoutResult, error) {
	ctx = s.ctx(ctx)

	res, err := s.orch.Submit(ctx, s.defaults)
	if err != nil {
		return nil, err
	}

	doc := receipt.Document{
		Number:    receipt.Number(),
		OrderID:   res.OrderID,
		IssuedAt:  res.SubmittedAt,
		Lines:     res.Lines,
		Breakdown: res.Breakdown,
	}

	pngData, rerr := s.renderer.Render(doc)
	if rerr != nil {
		logger.FromCtx(ctx).Warn("receipt rendering failed",
			zap.Int64("order_id", res.OrderID),
			zap.Error(rerr),
		)
		pngData = nil
	}

	return &CheckoutResult{
		Result:        res,
		ReceiptNumber: doc.Number,
		ReceiptPNG:    pngData,
	}, nil
}

// Cancel abandons the uncommitted cart.
func (s *Session) Cancel() {
	s.cart.Clear()
}

func (s *Session) OrderDetail(ctx context.Context, orderID int64) (*gateway.OrderDetail, error) {
	return s.gw.GetOrderDetail(s.ctx(ctx), orderID)
}

func (s *Session) Orders(ctx context.Context, filter gateway.ListFilter) ([]gateway.OrderSummary, error) {
	return s.gw.ListOrders(s.ctx(ctx), filter)
}

// ReconcileStatus is the manual path for an order left incomplete by a
// partial line-submission failure.
func (s *Session) ReconcileStatus(ctx context.Context, orderID int64, in gateway.StatusInput) error {
	return s.gw.UpdateOrderStatus(s.ctx(ctx), orderID, in)
}

// Close releases the session's background resources. The cart is dropped
// with it.
func (s *Session) Close() {
	s.searcher.Close()
}
