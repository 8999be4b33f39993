package catalog

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"salepoint/internal/logger"
)

// Source is the slice of the collaborator API the searcher needs.
type Source interface {
	SearchProducts(ctx context.Context, term string) ([]Product, error)
}

// ResultFunc receives the products for the term that produced them. Only the
// latest issued query ever reports; superseded in-flight responses are
// discarded. May be invoked from a background goroutine.
type ResultFunc func(term string, products []Product)

// Searcher debounces free-text catalog queries so rapid keystrokes issue a
// single request, and tracks a monotonically increasing token so a response
// that was overtaken by a newer term is never applied out of order.
type Searcher struct {
	source    Source
	interval  time.Duration
	onResults ResultFunc
	cache     *lru.Cache[string, []Product]

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	closed bool
}

func NewSearcher(source Source, interval time.Duration, cacheSize int, onResults ResultFunc) (*Searcher, error) {
	if cacheSize <= 0 {
		return nil, ErrInvalidCacheSize
	}
	cache, err := lru.New[string, []Product](cacheSize)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}

	return &Searcher{
		source:    source,
		interval:  interval,
		onResults: onResults,
		cache:     cache,
	}, nil
}

// Search schedules a debounced catalog query for term. Each call supersedes
// any pending or in-flight query. A cached snapshot for the same term is
// reported immediately for display; the live result follows and refreshes it.
func (s *Searcher) Search(ctx context.Context, term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSearcherClosed
	}

	s.seq++
	token := s.seq

	if cached, ok := s.cache.Get(term); ok {
		s.onResults(term, cached)
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.interval, func() {
		s.run(ctx, token, term)
	})

	return nil
}

func (s *Searcher) run(ctx context.Context, token uint64, term string) {
	if !s.isLatest(token) {
		return
	}

	products, err := s.source.SearchProducts(ctx, term)
	if err != nil {
		// A failed catalog query must not crash the cart: degrade to an
		// empty result set and tell the operator's log.
		logger.FromCtx(ctx).Warn("catalog query failed",
			zap.String("term", term),
			zap.Error(err),
		)
		products = nil
	} else {
		s.cache.Add(term, products)
	}

	if !s.isLatest(token) {
		return
	}
	s.onResults(term, products)
}

func (s *Searcher) isLatest(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && token == s.seq
}

// Close stops any pending query. Results still in flight are discarded.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
