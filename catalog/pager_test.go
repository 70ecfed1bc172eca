package catalog

import (
	"context"
	"errors"
	"testing"
)

// staticPager builds a pager over a fixed sequence of pages, recording how
// many fetches were made.
func staticPager(pages []*Page[string], fetches *int) *Pager[string] {
	return NewPager(func(ctx context.Context, token string) (*Page[string], error) {
		i := *fetches
		*fetches++
		if i >= len(pages) {
			return nil, errors.New("fetched past final page")
		}
		return pages[i], nil
	})
}

func TestPagerTermination(t *testing.T) {
	pages := []*Page[string]{
		{Items: []string{"a", "b"}, NextToken: "t1"},
		{Items: []string{"c"}, NextToken: "t2"},
		{Items: []string{"d"}}, // final page: no continuation token
	}

	fetches := 0
	pager := staticPager(pages, &fetches)

	var got []string
	ctx := context.Background()
	for pager.Next(ctx) {
		got = append(got, pager.Page().Items...)
	}

	if err := pager.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
	if fetches != len(pages) {
		t.Errorf("fetched %d pages, want %d", fetches, len(pages))
	}

	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q (order must be preserved)", i, got[i], want[i])
		}
	}

	// Exhausted pager must not fetch again
	if pager.Next(ctx) {
		t.Error("Next() = true after exhaustion")
	}
	if fetches != len(pages) {
		t.Errorf("fetched %d pages after exhaustion, want %d", fetches, len(pages))
	}
}

func TestPagerEmptyCollection(t *testing.T) {
	// The first page is always fetched: an empty collection is one empty
	// page, not zero pages.
	fetches := 0
	pager := staticPager([]*Page[string]{{}}, &fetches)

	ctx := context.Background()
	if !pager.Next(ctx) {
		t.Fatal("Next() = false for first page of empty collection")
	}
	if len(pager.Page().Items) != 0 {
		t.Errorf("Page().Items = %v, want empty", pager.Page().Items)
	}
	if pager.Next(ctx) {
		t.Error("Next() = true after final page")
	}
	if fetches != 1 {
		t.Errorf("fetched %d pages, want 1", fetches)
	}
}

func TestPagerFetchError(t *testing.T) {
	fetchErr := errors.New("listing failed")
	calls := 0
	pager := NewPager(func(ctx context.Context, token string) (*Page[string], error) {
		calls++
		if calls == 1 {
			return &Page[string]{Items: []string{"a"}, NextToken: "t1"}, nil
		}
		return nil, fetchErr
	})

	ctx := context.Background()
	if !pager.Next(ctx) {
		t.Fatal("Next() = false for first page")
	}
	if pager.Next(ctx) {
		t.Error("Next() = true for failed fetch")
	}
	if !errors.Is(pager.Err(), fetchErr) {
		t.Errorf("Err() = %v, want %v", pager.Err(), fetchErr)
	}

	// No automatic retry: the pager stays stopped
	if pager.Next(ctx) {
		t.Error("Next() = true after error")
	}
	if calls != 2 {
		t.Errorf("made %d fetches, want 2", calls)
	}
}

func TestPagerContinuationTokens(t *testing.T) {
	var tokens []string
	pager := NewPager(func(ctx context.Context, token string) (*Page[string], error) {
		tokens = append(tokens, token)
		if token == "" {
			return &Page[string]{NextToken: "second"}, nil
		}
		return &Page[string]{}, nil
	})

	ctx := context.Background()
	for pager.Next(ctx) {
	}
	if err := pager.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}

	want := []string{"", "second"}
	if len(tokens) != len(want) {
		t.Fatalf("fetch tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("fetch %d token = %q, want %q", i, tokens[i], want[i])
		}
	}
}
