package pricing

import "salepoint/internal/cart"

// Policy is the configured tax composition in basis points. The canonical
// counter-sale policy is 10% VAT and no surtax, but both knobs come from
// configuration so a revenue-code change never needs a redesign.
type Policy struct {
	VATRateBP    int64
	SurtaxRateBP int64
}

// Breakdown is derived from the cart, never stored. All amounts are in minor
// currency units.
type Breakdown struct {
	Subtotal int64
	VAT      int64
	Surtax   int64
	Tax      int64
	Total    int64
}

type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Quote recomputes the full breakdown from the cart lines. It is pure and
// must be called after every cart mutation; nothing here is cached or
// incrementally patched.
func (e *Engine) Quote(lines []cart.Line) Breakdown {
	var b Breakdown
	for _, ln := range lines {
		b.Subtotal += ln.Amount()
	}

	b.VAT = taxOf(b.Subtotal, e.policy.VATRateBP)
	b.Surtax = taxOf(b.Subtotal, e.policy.SurtaxRateBP)
	b.Tax = b.VAT + b.Surtax
	b.Total = b.Subtotal + b.Tax
	return b
}

// taxOf applies a basis-point rate to an amount, rounding half-up only at
// the final figure.
func taxOf(amount, rateBP int64) int64 {
	return (amount*rateBP + 5000) / 10000
}
