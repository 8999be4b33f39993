package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salepoint/internal/cart"
)

func TestEngine_Quote(t *testing.T) {
	vatOnly := NewEngine(Policy{VATRateBP: 1000})

	t.Run("Counter sale at 10% VAT", func(t *testing.T) {
		// Two cup lines merged to one product plus a second distinct
		// product, all priced 150000.
		lines := []cart.Line{
			{ProductID: 1, UnitPrice: 150000, Quantity: 2},
			{ProductID: 2, UnitPrice: 150000, Quantity: 1},
		}

		b := vatOnly.Quote(lines)

		assert.Equal(t, int64(450000), b.Subtotal)
		assert.Equal(t, int64(45000), b.VAT)
		assert.Equal(t, int64(45000), b.Tax)
		assert.Equal(t, int64(495000), b.Total)
	})

	t.Run("Empty cart quotes all zeros", func(t *testing.T) {
		b := vatOnly.Quote(nil)

		assert.Equal(t, int64(0), b.Subtotal)
		assert.Equal(t, int64(0), b.Tax)
		assert.Equal(t, int64(0), b.Total)
	})

	t.Run("Total always equals subtotal plus tax", func(t *testing.T) {
		lines := []cart.Line{
			{ProductID: 1, UnitPrice: 3333, Quantity: 7},
			{ProductID: 2, UnitPrice: 99999, Quantity: 3},
			{ProductID: 3, UnitPrice: 1, Quantity: 1},
		}

		b := vatOnly.Quote(lines)

		assert.Equal(t, b.Subtotal+b.Tax, b.Total)
		assert.Equal(t, b.VAT+b.Surtax, b.Tax)
	})

	t.Run("Rounding happens once at the final tax figure", func(t *testing.T) {
		// 10% of 15 is 1.5, rounded half-up to 2.
		b := vatOnly.Quote([]cart.Line{{UnitPrice: 15, Quantity: 1}})

		assert.Equal(t, int64(2), b.VAT)
		assert.Equal(t, int64(17), b.Total)
	})

	t.Run("Configured surtax stacks on VAT", func(t *testing.T) {
		withSurtax := NewEngine(Policy{VATRateBP: 1000, SurtaxRateBP: 150})

		b := withSurtax.Quote([]cart.Line{{UnitPrice: 100000, Quantity: 1}})

		assert.Equal(t, int64(10000), b.VAT)
		assert.Equal(t, int64(1500), b.Surtax)
		assert.Equal(t, int64(11500), b.Tax)
		assert.Equal(t, int64(111500), b.Total)
	})

	t.Run("Monotonic in quantity", func(t *testing.T) {
		prev := int64(-1)
		for qty := 1; qty <= 20; qty++ {
			b := vatOnly.Quote([]cart.Line{{UnitPrice: 14999, Quantity: qty}})
			assert.Greater(t, b.Total, prev)
			prev = b.Total
		}
	})
}
