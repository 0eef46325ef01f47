// ABOUTME: Synchronization engine that serves the feed from cache or network
// ABOUTME: Commits fresh feeds to the cache slot and reconciles the item store

package feedsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/harper/curio/internal/models"
	"github.com/harper/curio/internal/parse"
	"github.com/harper/curio/internal/storage"
)

// DefaultHistoryDays is the window used by FetchRecentItems when none is given.
const DefaultHistoryDays = 14

// DefaultFetchTimeout bounds one shared feed download.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves the raw feed body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Source says where a FetchResult came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceNetwork  Source = "network"
	SourceFallback Source = "fallback"
)

// FetchResult is a served feed document plus how it was obtained.
type FetchResult struct {
	Document  *models.Document
	Source    Source
	FetchedAt time.Time
	// Warning is a *CachedFallbackError when the network failed and the
	// cache answered instead.
	Warning error
}

// Degraded reports whether the result is stale data served after a failure.
func (r *FetchResult) Degraded() bool {
	return r.Warning != nil
}

// Options configures an Engine.
type Options struct {
	FeedURL       string
	CacheValidity time.Duration
	HistoryDays   int
	// FetchTimeout bounds a download shared by concurrent callers, which
	// outlives any single caller's context.
	FetchTimeout  time.Duration
	Logger        *log.Logger
	Now           func() time.Time
}

// Status is a point-in-time view of the engine and its cache.
type Status struct {
	Loading        bool
	LastError      error
	HasCache       bool
	CacheFetchedAt time.Time
	CacheValid     bool
	CacheItems     int
	CacheVersion   string
}

// Engine serves feed documents, preferring a valid cache over the network.
// One Engine should be shared by everything using the same store.
type Engine struct {
	store       storage.Store
	fetcher     Fetcher
	feedURL     string
	validity    time.Duration
	historyDays int
	timeout     time.Duration
	logger      *log.Logger
	now         func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	loading int
	lastErr error
}

// New creates an engine over store, retrieving the feed with fetcher.
func New(store storage.Store, fetcher Fetcher, opts Options) *Engine {
	e := &Engine{
		store:       store,
		fetcher:     fetcher,
		feedURL:     opts.FeedURL,
		validity:    opts.CacheValidity,
		historyDays: opts.HistoryDays,
		timeout:     opts.FetchTimeout,
		logger:      opts.Logger,
		now:         opts.Now,
	}
	if e.validity <= 0 {
		e.validity = models.DefaultCacheValidity
	}
	if e.historyDays <= 0 {
		e.historyDays = DefaultHistoryDays
	}
	if e.timeout <= 0 {
		e.timeout = DefaultFetchTimeout
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// FetchFeed returns the feed document. A valid cache is returned without
// touching the network unless force is set. A failed retrieval falls back to
// any cached copy, valid or not, and flags the result as degraded; with no
// cache it returns a *NetworkError.
func (e *Engine) FetchFeed(ctx context.Context, force bool) (*FetchResult, error) {
	e.begin()
	result, err := e.fetchFeed(ctx, force)
	if err != nil {
		e.finish(err)
		return nil, err
	}
	e.finish(result.Warning)
	return result, nil
}

func (e *Engine) fetchFeed(ctx context.Context, force bool) (*FetchResult, error) {
	cached := e.loadCache()

	if !force && cached != nil && cached.IsValid(e.now(), e.validity) {
		e.logger.Debug("serving feed from cache", "fetched_at", cached.FetchedAt)
		return &FetchResult{
			Document:  cached.Document(),
			Source:    SourceCache,
			FetchedAt: cached.FetchedAt,
		}, nil
	}

	fresh, err := e.retrieve(ctx)
	if err == nil {
		return &FetchResult{
			Document:  fresh.doc,
			Source:    SourceNetwork,
			FetchedAt: fresh.fetchedAt,
		}, nil
	}

	if cached != nil {
		e.logger.Warn("feed fetch failed, serving cached content", "err", err, "fetched_at", cached.FetchedAt)
		return &FetchResult{
			Document:  cached.Document(),
			Source:    SourceFallback,
			FetchedAt: cached.FetchedAt,
			Warning:   &CachedFallbackError{Err: err},
		}, nil
	}

	e.logger.Warn("feed fetch failed with no cache", "err", err)
	return nil, &NetworkError{Err: err}
}

// FetchTodaysItem returns the item resolved for the current local day.
func (e *Engine) FetchTodaysItem(ctx context.Context) (models.Item, error) {
	item, _, err := e.ResolveToday(ctx)
	return item, err
}

// ResolveToday is FetchTodaysItem plus the fetch result the item came from.
// When nothing resolves the error is ErrNoItemScheduled, joined with the
// result's *CachedFallbackError if the feed came from a stale cache; the
// result is still returned so callers can report where the feed came from.
func (e *Engine) ResolveToday(ctx context.Context) (models.Item, *FetchResult, error) {
	result, err := e.FetchFeed(ctx, false)
	if err != nil {
		return models.Item{}, nil, err
	}

	item, ok := result.Document.ItemForDate(e.now())
	if !ok {
		noItem := ErrNoItemScheduled
		if result.Warning != nil {
			noItem = errors.Join(ErrNoItemScheduled, result.Warning)
		}
		e.setLastError(noItem)
		return models.Item{}, result, noItem
	}
	return item, result, nil
}

// FetchItemForDate returns the item resolved for date: the exact match, or
// the most recent earlier item.
func (e *Engine) FetchItemForDate(ctx context.Context, date time.Time) (models.Item, bool, error) {
	result, err := e.FetchFeed(ctx, false)
	if err != nil {
		return models.Item{}, false, err
	}
	item, ok := result.Document.ItemForDate(date)
	return item, ok, nil
}

// FetchRecentItems returns items from the last days days, newest first.
// A non-positive days uses the configured history window.
func (e *Engine) FetchRecentItems(ctx context.Context, days int) ([]models.Item, error) {
	if days <= 0 {
		days = e.historyDays
	}
	result, err := e.FetchFeed(ctx, false)
	if err != nil {
		return nil, err
	}
	return result.Document.RecentItems(days, e.now()), nil
}

// FindItem looks id up in the item store, then in the cached feed. It never
// touches the network: every fetched item is already reconciled into the
// store, and favourites that have left the feed still resolve.
func (e *Engine) FindItem(id string) (models.Item, error) {
	record, err := e.store.GetRecord(id)
	if err == nil {
		return record.ToItem(), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		e.logger.Warn("failed to read item record", "item", id, "err", err)
	}

	if cached := e.loadCache(); cached != nil {
		if item, ok := cached.Document().FindItem(id); ok {
			return item, nil
		}
	}
	return models.Item{}, fmt.Errorf("item %s: %w", id, err)
}

// HistoryDays returns the configured recent-items window.
func (e *Engine) HistoryDays() int {
	return e.historyDays
}

// IsLoading reports whether a FetchFeed call is in flight.
func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading > 0
}

// LastError returns the outcome of the most recent call: nil on success,
// a *CachedFallbackError after a degraded fetch, or the call's error.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Status reports engine state and what the cache currently holds.
func (e *Engine) Status() Status {
	e.mu.Lock()
	status := Status{Loading: e.loading > 0, LastError: e.lastErr}
	e.mu.Unlock()

	if cached := e.loadCache(); cached != nil {
		doc := cached.Document()
		status.HasCache = true
		status.CacheFetchedAt = cached.FetchedAt
		status.CacheValid = cached.IsValid(e.now(), e.validity)
		status.CacheItems = len(doc.Items)
		status.CacheVersion = doc.Version
	}
	return status
}

func (e *Engine) begin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading++
	e.lastErr = nil
}

func (e *Engine) finish(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading--
	e.lastErr = err
}

func (e *Engine) setLastError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastErr = err
}

// loadCache returns the cache entry, or nil when it is missing or unreadable.
func (e *Engine) loadCache() *models.CacheEntry {
	entry, err := e.store.LoadCache()
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		e.logger.Warn("cache unreadable, treating as empty", "err", err)
		return nil
	}
	return entry
}

type download struct {
	doc       *models.Document
	fetchedAt time.Time
}

// retrieve downloads the feed once for all concurrent callers. The shared
// download is detached from the caller that started it, so one caller
// giving up does not fail the others; each caller still stops waiting when
// its own context ends.
func (e *Engine) retrieve(ctx context.Context) (*download, error) {
	ch := e.group.DoChan("feed", func() (interface{}, error) {
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
		defer cancel()
		return e.download(dctx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*download), nil
	}
}

func (e *Engine) download(ctx context.Context) (*download, error) {
	e.logger.Debug("fetching feed", "url", e.feedURL)

	data, err := e.fetcher.Fetch(ctx, e.feedURL)
	if err != nil {
		return nil, err
	}

	doc, err := parse.Parse(data)
	if err != nil {
		return nil, err
	}

	fetchedAt := e.now()
	e.commit(doc, fetchedAt)

	return &download{doc: doc, fetchedAt: fetchedAt}, nil
}

// commit persists a fresh document. Failures are logged and otherwise
// ignored; the caller still gets the document.
func (e *Engine) commit(doc *models.Document, fetchedAt time.Time) {
	entry, err := models.NewCacheEntry(doc, fetchedAt)
	if err != nil {
		e.logger.Warn("failed to encode cache entry", "err", err)
	} else if err := e.store.ReplaceCache(entry); err != nil {
		e.logger.Warn("failed to replace cache", "err", err)
	}

	summary, err := e.store.Reconcile(doc.Items)
	if err != nil {
		e.logger.Warn("failed to reconcile items", "err", err)
		return
	}
	e.logger.Debug("reconciled items",
		"created", summary.Created,
		"updated", summary.Updated)
}
