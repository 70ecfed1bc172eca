package catalog

import "context"

// Page is one page of a paginated listing.
type Page[T any] struct {
	// Items are the entries on this page, in catalog order.
	Items []T
	// NextToken is the continuation token for the following page.
	// Empty means this is the final page.
	NextToken string
}

// PageFunc fetches a single page for the given continuation token. An empty
// token requests the first page.
type PageFunc[T any] func(ctx context.Context, token string) (*Page[T], error)

// Pager lazily walks a paginated collection. It follows the scanner idiom:
//
//	pager := catalog.NewPager(fetch)
//	for pager.Next(ctx) {
//		for _, item := range pager.Page().Items {
//			...
//		}
//	}
//	if err := pager.Err(); err != nil {
//		...
//	}
//
// The sequence is finite and non-restartable: the first page is always
// fetched (an empty collection still yields one page), and iteration stops
// after a page arrives without a continuation token. A failed page fetch
// ends the sequence; Err() reports it.
type Pager[T any] struct {
	fetch   PageFunc[T]
	page    *Page[T]
	token   string
	started bool
	done    bool
	err     error
}

// NewPager creates a pager over the given page-fetch function.
func NewPager[T any](fetch PageFunc[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch}
}

// Next advances to the next page, fetching it from the catalog. It returns
// false when the sequence is exhausted or a fetch failed.
func (p *Pager[T]) Next(ctx context.Context) bool {
	if p.done || p.err != nil {
		return false
	}
	if p.started && p.token == "" {
		p.done = true
		return false
	}

	page, err := p.fetch(ctx, p.token)
	if err != nil {
		p.err = err
		p.done = true
		return false
	}

	p.started = true
	p.page = page
	p.token = page.NextToken
	return true
}

// Page returns the page fetched by the last successful call to Next.
func (p *Pager[T]) Page() *Page[T] {
	return p.page
}

// Err returns the error that stopped iteration, if any.
func (p *Pager[T]) Err() error {
	return p.err
}
