// Package listview holds the client-side state of a resource list: the
// fetched collection, a search term and the current page.
package listview

import (
	"context"
	"fmt"
	"strings"
)

// DefaultPageSize is the initial number of rows per page.
const DefaultPageSize = 10

// PageSizeOptions are the page sizes a user may pick.
var PageSizeOptions = []int{5, 10, 25}

// Searchable exposes the text fields a search term is matched against.
type Searchable interface {
	SearchFields() []string
}

// Filter returns the items with at least one search field containing term,
// ignoring case. The term is matched as typed, surrounding spaces included.
// Order is preserved. An empty term matches everything.
func Filter[T Searchable](items []T, term string) []T {
	term = strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if term == "" || matches(item, term) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item Searchable, term string) bool {
	for _, f := range item.SearchFields() {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Paginate returns the page-th slice of size items. Out of range pages are empty.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 || page < 0 {
		return []T{}
	}
	start := page * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageCount returns how many pages total items fill at size per page.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Notice is the transient message shown after a mutation.
type Notice struct {
	Message string
	Err     error
}

// Success reports whether the mutation succeeded.
func (n Notice) Success() bool { return n.Err == nil }

// View is the state of one resource list. It is not safe for concurrent use.
type View[T Searchable] struct {
	fetch func(ctx context.Context) ([]T, error)

	items    []T
	loading  bool
	err      error
	search   string
	page     int
	pageSize int
}

// New creates a View that loads its collection with fetch.
func New[T Searchable](fetch func(ctx context.Context) ([]T, error)) *View[T] {
	return &View[T]{fetch: fetch, pageSize: DefaultPageSize}
}

// Load fetches the full collection. On failure the collection is emptied and
// the error is kept for display.
func (v *View[T]) Load(ctx context.Context) error {
	v.loading = true
	items, err := v.fetch(ctx)
	v.loading = false
	if err != nil {
		v.items = nil
		v.err = err
		return err
	}
	v.items = items
	v.err = nil
	if last := PageCount(len(v.Filtered()), v.pageSize) - 1; v.page > last && last >= 0 {
		v.page = last
	}
	return nil
}

// Loading reports whether a fetch is in flight.
func (v *View[T]) Loading() bool { return v.loading }

// Err returns the error of the last failed load, if any.
func (v *View[T]) Err() error { return v.err }

// Items returns the full collection.
func (v *View[T]) Items() []T { return v.items }

// Filtered returns the collection narrowed by the search term.
func (v *View[T]) Filtered() []T { return Filter(v.items, v.search) }

// PageItems returns the rows on the current page.
func (v *View[T]) PageItems() []T { return Paginate(v.Filtered(), v.page, v.pageSize) }

// PageCount returns the number of pages of filtered rows.
func (v *View[T]) PageCount() int { return PageCount(len(v.Filtered()), v.pageSize) }

func (v *View[T]) Search() string { return v.search }
func (v *View[T]) Page() int      { return v.page }
func (v *View[T]) PageSize() int  { return v.pageSize }

// SetSearch changes the search term and returns to the first page.
func (v *View[T]) SetSearch(term string) {
	if term != v.search {
		v.page = 0
	}
	v.search = term
}

// SetPage moves to page, clamped to the available range.
func (v *View[T]) SetPage(page int) {
	if last := v.PageCount() - 1; page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	v.page = page
}

// SetPageSize changes the page size and returns to the first page.
func (v *View[T]) SetPageSize(size int) error {
	for _, opt := range PageSizeOptions {
		if opt == size {
			v.pageSize = size
			v.page = 0
			return nil
		}
	}
	return fmt.Errorf("page size must be one of %v", PageSizeOptions)
}

// Mutate runs op, then refetches the collection regardless of the outcome.
// The returned notice carries success or failure for display.
func (v *View[T]) Mutate(ctx context.Context, op func(ctx context.Context) error, success, failure string) Notice {
	opErr := op(ctx)
	_ = v.Load(ctx)
	if opErr != nil {
		return Notice{Message: fmt.Sprintf("%s: %v", failure, opErr), Err: opErr}
	}
	return Notice{Message: success}
}
