package browser

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vidyasagar/navcore/internal/navigation"
)

const DefaultCacheSize = 50

// Loader is the HTTP renderer behind a Navigator. Probe fetches an address
// and keeps its Page in an LRU cache so that back/forward traversal can show
// the summary without another request.
type Loader struct {
	fetcher *Fetcher
	cache   *lru.Cache[string, *Page]
}

// NewLoader creates a Loader caching up to cacheSize pages.
func NewLoader(fetcher *Fetcher, cacheSize int) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *Page](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating page cache: %w", err)
	}
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &Loader{fetcher: fetcher, cache: cache}, nil
}

// Probe implements navigation.Prober. It always refetches, so a reload
// replaces the cached Page.
func (l *Loader) Probe(addr navigation.Address) error {
	_, err := l.fetch(context.Background(), addr)
	return err
}

// Load returns the cached Page for addr, fetching it on a miss.
func (l *Loader) Load(ctx context.Context, addr navigation.Address) (*Page, error) {
	if page, ok := l.cache.Get(addr.String()); ok {
		return page, nil
	}
	return l.fetch(ctx, addr)
}

// Cached returns the Page for addr if it is in the cache.
func (l *Loader) Cached(addr navigation.Address) (*Page, bool) {
	return l.cache.Get(addr.String())
}

// Forget drops addr from the cache.
func (l *Loader) Forget(addr navigation.Address) {
	l.cache.Remove(addr.String())
}

// size returns the number of cached pages.
func (l *Loader) size() int {
	return l.cache.Len()
}

func (l *Loader) fetch(ctx context.Context, addr navigation.Address) (*Page, error) {
	if addr.IsZero() {
		return nil, fmt.Errorf("loading page: empty address")
	}
	result, err := l.fetcher.Fetch(ctx, addr.String())
	if err != nil {
		return nil, err
	}
	page := Summarize(result)
	l.cache.Add(addr.String(), page)
	return page, nil
}
