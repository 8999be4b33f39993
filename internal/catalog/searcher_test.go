package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubSource records every term it is asked for and can block or fail on
// demand.
type stubSource struct {
	mu       sync.Mutex
	terms    []string
	products map[string][]Product
	err      error
	blockOn  string
	release  chan struct{}
}

func (s *stubSource) SearchProducts(ctx context.Context, term string) ([]Product, error) {
	s.mu.Lock()
	s.terms = append(s.terms, term)
	blocked := term == s.blockOn && s.blockOn != ""
	s.mu.Unlock()

	if blocked {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.products[term], nil
}

func (s *stubSource) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

// resultSink collects callback deliveries.
type resultSink struct {
	mu      sync.Mutex
	terms   []string
	results [][]Product
}

func (r *resultSink) fn(term string, products []Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms = append(r.terms, term)
	r.results = append(r.results, products)
}

func (r *resultSink) delivered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.terms...)
}

func TestSearcher_Debounce(t *testing.T) {
	t.Run("Rapid keystrokes fire one request for the final term", func(t *testing.T) {
		source := &stubSource{products: map[string][]Product{
			"coffee": {{ID: 1, Name: "Coffee", UnitPrice: 25000, StockQuantity: 50}},
		}}
		sink := &resultSink{}

		s, err := NewSearcher(source, 50*time.Millisecond, 8, sink.fn)
		assert.NoError(t, err)
		defer s.Close()

		ctx := context.Background()
		assert.NoError(t, s.Search(ctx, "c"))
		assert.NoError(t, s.Search(ctx, "co"))
		assert.NoError(t, s.Search(ctx, "coffee"))

		time.Sleep(400 * time.Millisecond)

		assert.Equal(t, []string{"coffee"}, source.calls())
		assert.Equal(t, []string{"coffee"}, sink.delivered())
	})

	t.Run("Quiet typing still issues each query", func(t *testing.T) {
		source := &stubSource{products: map[string][]Product{}}
		sink := &resultSink{}

		s, err := NewSearcher(source, 10*time.Millisecond, 8, sink.fn)
		assert.NoError(t, err)
		defer s.Close()

		ctx := context.Background()
		assert.NoError(t, s.Search(ctx, "tea"))
		time.Sleep(200 * time.Millisecond)
		assert.NoError(t, s.Search(ctx, "bread"))
		time.Sleep(200 * time.Millisecond)

		assert.Equal(t, []string{"tea", "bread"}, source.calls())
	})
}

func TestSearcher_StaleResponseDiscarded(t *testing.T) {
	source := &stubSource{
		products: map[string][]Product{
			"slow": {{ID: 1, Name: "Slow"}},
			"fast": {{ID: 2, Name: "Fast"}},
		},
		blockOn: "slow",
		release: make(chan struct{}),
	}
	sink := &resultSink{}

	s, err := NewSearcher(source, 5*time.Millisecond, 8, sink.fn)
	assert.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	assert.NoError(t, s.Search(ctx, "slow"))

	// Wait for the slow request to actually be in flight.
	assert.Eventually(t, func() bool {
		return len(source.calls()) == 1
	}, time.Second, 5*time.Millisecond)

	// A newer term supersedes the in-flight one.
	assert.NoError(t, s.Search(ctx, "fast"))
	time.Sleep(150 * time.Millisecond)

	close(source.release)
	time.Sleep(150 * time.Millisecond)

	// The superseded response is discarded, never applied out of order.
	assert.Equal(t, []string{"fast"}, sink.delivered())
}

func TestSearcher_ErrorDegradesToEmpty(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	sink := &resultSink{}

	s, err := NewSearcher(source, 5*time.Millisecond, 8, sink.fn)
	assert.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Search(context.Background(), "coffee"))
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, []string{"coffee"}, sink.delivered())
	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Empty(t, sink.results[0])
}

func TestSearcher_CachedSnapshotServedImmediately(t *testing.T) {
	source := &stubSource{products: map[string][]Product{
		"milk": {{ID: 3, Name: "Milk", UnitPrice: 30000, StockQuantity: 12}},
	}}
	sink := &resultSink{}

	s, err := NewSearcher(source, 5*time.Millisecond, 8, sink.fn)
	assert.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	assert.NoError(t, s.Search(ctx, "milk"))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, []string{"milk"}, sink.delivered())

	// Second search for the same term reports the snapshot synchronously,
	// before the debounce window has even elapsed.
	assert.NoError(t, s.Search(ctx, "milk"))
	assert.Equal(t, []string{"milk", "milk"}, sink.delivered())
}

func TestSearcher_Close(t *testing.T) {
	source := &stubSource{}
	s, err := NewSearcher(source, 5*time.Millisecond, 8, func(string, []Product) {})
	assert.NoError(t, err)

	s.Close()

	assert.ErrorIs(t, s.Search(context.Background(), "coffee"), ErrSearcherClosed)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, source.calls())
}

func TestNewSearcher_InvalidCacheSize(t *testing.T) {
	_, err := NewSearcher(&stubSource{}, time.Millisecond, 0, func(string, []Product) {})
	assert.ErrorIs(t, err, ErrInvalidCacheSize)
}
