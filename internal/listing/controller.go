package listing

import (
	"context"
	"sync"
	"time"

	"github.com/PhucLe22/lms-client/internal/models"
)

// Query is the server-side list query.
type Query struct {
	Page     int
	PageSize int
	Search   string
	Filter   string // level or role, depending on the resource
}

// FetchFunc loads one page from the server.
type FetchFunc[T any] func(ctx context.Context, q Query) (*models.Paginated[T], error)

// Controller drives a paginated, searchable list page. Search input is
// debounced before hitting the server; filter changes reset to page 1.
// Superseded fetches are not aborted; a generation counter makes state
// updates last-write-wins, the equivalent of ignoring results for an
// unmounted page.
type Controller[T any] struct {
	mu sync.Mutex

	fetch    FetchFunc[T]
	debounce *Debouncer
	onError  func(error)

	query      Query
	items      []T
	totalCount int
	totalPages int
	loading    bool

	generation int
}

// ControllerOption configures a controller.
type ControllerOption[T any] func(*Controller[T])

// WithDebounce overrides the search debounce window.
func WithDebounce[T any](delay time.Duration) ControllerOption[T] {
	return func(c *Controller[T]) { c.debounce = NewDebouncer(delay) }
}

// WithOnError registers the failure sink (typically a toast).
func WithOnError[T any](fn func(error)) ControllerOption[T] {
	return func(c *Controller[T]) { c.onError = fn }
}

// NewController builds a list controller.
func NewController[T any](fetch FetchFunc[T], pageSize int, opts ...ControllerOption[T]) *Controller[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	c := &Controller[T]{
		fetch:    fetch,
		debounce: NewDebouncer(DefaultDebounce),
		query:    Query{Page: 1, PageSize: pageSize},
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the current page immediately. Called on page mount.
func (c *Controller[T]) Load(ctx context.Context) {
	c.runFetch(ctx)
}

// SetSearch updates the search text and schedules a debounced reload from
// page 1. Typing bursts produce exactly one query.
func (c *Controller[T]) SetSearch(ctx context.Context, search string) {
	c.mu.Lock()
	c.query.Search = search
	c.query.Page = 1
	c.mu.Unlock()
	c.debounce.Trigger(func() { c.runFetch(ctx) })
}

// SetFilter updates the dependent filter and reloads immediately from
// page 1.
func (c *Controller[T]) SetFilter(ctx context.Context, filter string) {
	c.mu.Lock()
	c.query.Filter = filter
	c.query.Page = 1
	c.mu.Unlock()
	c.runFetch(ctx)
}

// SetPage jumps to a page and reloads.
func (c *Controller[T]) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.query.Page = page
	c.mu.Unlock()
	c.runFetch(ctx)
}

func (c *Controller[T]) runFetch(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	q := c.query
	c.loading = true
	c.mu.Unlock()

	page, err := c.fetch(ctx, q)

	c.mu.Lock()
	if gen != c.generation {
		// a newer fetch superseded this one; drop the result
		c.mu.Unlock()
		return
	}
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		c.onError(err)
		return
	}
	c.items = page.Items
	c.totalCount = page.TotalCount
	c.totalPages = page.TotalPages
	c.mu.Unlock()
}

// Items returns a snapshot of the current rows.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Page returns the current page number.
func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Page
}

// TotalPages returns the page count reported by the server.
func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// TotalCount returns the row count reported by the server.
func (c *Controller[T]) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount
}

// Loading reports whether a fetch is outstanding.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Patch applies an optimistic in-place update to every matching row.
// Called after a row mutation succeeded server-side; on failure the list
// is left untouched and the error is surfaced elsewhere.
func (c *Controller[T]) Patch(match func(T) bool, apply func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if match(c.items[i]) {
			apply(&c.items[i])
		}
	}
}

// Remove drops matching rows locally after a successful delete.
func (c *Controller[T]) Remove(match func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// Stop cancels any pending debounced fetch.
func (c *Controller[T]) Stop() {
	c.debounce.Stop()
}
