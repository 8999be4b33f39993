package checkout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"salepoint/internal/cart"
	"salepoint/internal/gateway"
	"salepoint/internal/logger"
	"salepoint/internal/pricing"
)

// Gateway is the slice of the collaborator API the orchestrator needs.
type Gateway interface {
	CreateOrderHeader(ctx context.Context, in gateway.HeaderInput) (int64, error)
	AddOrderLine(ctx context.Context, in gateway.LineInput) error
}

// HeaderOptions selects the initial status pairing of the order header:
// completed/paid for counter sales, pending for deferred fulfillment.
type HeaderOptions struct {
	StaffID         int64
	CustomerID      int64
	DeliveryAddress string
	OrderStatus     string
	PaymentStatus   string
}

// Result is the confirmed submission, snapshotted before the cart is
// cleared so the receipt can still be rendered from it.
type Result struct {
	OrderID     int64
	Lines       []cart.Line
	Breakdown   pricing.Breakdown
	SubmittedAt time.Time
}

// Orchestrator drives the two-step create-then-populate order submission:
// one header request, then every cart line submitted concurrently against
// the returned order id. A boolean in-flight flag gates re-entry so a
// double-tap can never create a duplicate order.
type Orchestrator struct {
	gw     Gateway
	cart   *cart.Store
	engine *pricing.Engine

	inFlight atomic.Bool

	mu     sync.Mutex
	status Status
}

func NewOrchestrator(gw Gateway, store *cart.Store, engine *pricing.Engine) *Orchestrator {
	return &Orchestrator{
		gw:     gw,
		cart:   store,
		engine: engine,
		status: StatusIdle,
	}
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

func (o *Orchestrator) setStatus(ctx context.Context, s Status) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()

	logger.FromCtx(ctx).Info("checkout state changed", zap.String("status", s.String()))
}

// Submit commits the cart as a persisted order. On success the cart is
// cleared and the snapshot returned. On any failure the cart is left intact
// so the operator can retry without re-entering items; if the header was
// already created, the returned error names the orphaned order id for manual
// reconciliation — there is no automatic rollback.
func (o *Orchestrator) Submit(ctx context.Context, opts HeaderOptions) (*Result, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer o.inFlight.Store(false)

	log := logger.FromCtx(ctx)

	lines := o.cart.Lines()
	if len(lines) == 0 {
		o.setStatus(ctx, StatusIdle)
		return nil, ErrCartEmpty
	}

	// Snapshot the money figures now; the cart is cleared on success.
	breakdown := o.engine.Quote(lines)

	o.setStatus(ctx, StatusHeaderCreating)

	orderID, err := o.gw.CreateOrderHeader(ctx, gateway.HeaderInput{
		StaffID:         opts.StaffID,
		CustomerID:      opts.CustomerID,
		DeliveryAddress: opts.DeliveryAddress,
		OrderStatus:     opts.OrderStatus,
		PaymentStatus:   opts.PaymentStatus,
	})
	if err != nil {
		// Nothing committed server-side yet; fully recoverable.
		o.setStatus(ctx, StatusFailed)
		return nil, fmt.Errorf("create order header: %w", err)
	}

	o.setStatus(ctx, StatusLinesSubmitting)

	// Fire all line submissions together and join on every outcome before
	// deciding success or failure.
	var (
		wg    sync.WaitGroup
		errMu sync.Mutex
		lerr  error
	)
	for _, ln := range lines {
		wg.Add(1)
		go func(ln cart.Line) {
			defer wg.Done()

			err := o.gw.AddOrderLine(ctx, gateway.LineInput{
				OrderID:     orderID,
				ProductID:   ln.ProductID,
				Quantity:    ln.Quantity,
				UnitPrice:   ln.UnitPrice,
				Discount:    0,
				ReferenceID: uuid.NewString(),
			})
			if err != nil {
				errMu.Lock()
				lerr = multierr.Append(lerr, fmt.Errorf("product %d: %w", ln.ProductID, err))
				errMu.Unlock()
			}
		}(ln)
	}
	wg.Wait()

	if lerr != nil {
		// The header exists with partial lines. The cart is kept so the
		// operator can reconcile manually, typically via a status update.
		o.setStatus(ctx, StatusFailed)
		log.Error("line submission failed, order left incomplete",
			zap.Int64("order_id", orderID),
			zap.Error(lerr),
		)
		return nil, fmt.Errorf("order %d incomplete, manual reconciliation required: %w", orderID, lerr)
	}

	o.cart.Clear()
	o.setStatus(ctx, StatusSucceeded)
	log.Info("checkout succeeded",
		zap.Int64("order_id", orderID),
		zap.Int("line_count", len(lines)),
		zap.Int64("total", breakdown.Total),
	)

	return &Result{
		OrderID:     orderID,
		Lines:       lines,
		Breakdown:   breakdown,
		SubmittedAt: time.Now(),
	}, nil
}
