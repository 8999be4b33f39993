package catalog

import "errors"

var (
	ErrSearcherClosed   = errors.New("catalog searcher closed")
	ErrInvalidCacheSize = errors.New("catalog cache size must be positive")
)
