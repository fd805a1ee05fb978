package explorer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/trovecli/trove/internal/catalog"
	"github.com/trovecli/trove/internal/favorites"
	"github.com/trovecli/trove/internal/kvstore"
)

// fakeFetcher serves a synthetic catalog of `count` items and can be told
// to fail individual detail fetches or the list fetch itself.
type fakeFetcher struct {
	count     int
	failIDs   map[int]bool
	listErr   error
	listCalls atomic.Int64
}

func (f *fakeFetcher) FetchList(ctx context.Context, offset, limit int) (*catalog.ListPage, error) {
	f.listCalls.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	page := &catalog.ListPage{Count: f.count}
	for i := offset; i < offset+limit && i < f.count; i++ {
		id := i + 1
		page.Results = append(page.Results, catalog.Ref{
			Name: fmt.Sprintf("item-%03d", id),
			URL:  fmt.Sprintf("https://catalog.example.com/api/v2/items/%d/", id),
		})
	}
	return page, nil
}

func (f *fakeFetcher) FetchByID(ctx context.Context, id int) (*catalog.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.failIDs[id] {
		return nil, &catalog.StatusError{Code: 500, Path: fmt.Sprintf("/items/%d", id)}
	}
	tag := "flora"
	if id%2 == 0 {
		tag = "ember"
	}
	return &catalog.Item{
		ID:   id,
		Name: fmt.Sprintf("item-%03d", id),
		Tags: []catalog.Tag{{Slot: 1, Name: tag}},
	}, nil
}

func (f *fakeFetcher) FetchByName(ctx context.Context, name string) (*catalog.Item, error) {
	return nil, &catalog.StatusError{Code: 404, Path: "/items/" + name}
}

func newFavorites(t *testing.T) *favorites.Store {
	t.Helper()
	kv, err := kvstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("kvstore.New returned error: %v", err)
	}
	return favorites.New(kv, slog.New(slog.DiscardHandler))
}

func newExplorer(t *testing.T, client catalog.Fetcher, opts Options) *Explorer {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	e := New(t.Context(), client, newFavorites(t), opts)
	t.Cleanup(e.Close)
	return e
}

// waitSettled polls until the explorer leaves the loading state.
func waitSettled(t *testing.T, e *Explorer) Snapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if snap := e.Snapshot(); !snap.Loading {
			return snap
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("explorer never settled")
	return Snapshot{}
}

func TestFetchPage_ResolvesFullPage(t *testing.T) {
	t.Parallel()

	client := &fakeFetcher{count: 1302}
	e := newExplorer(t, client, Options{PageSize: 20})

	items, total, err := e.fetchPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetchPage returned error: %v", err)
	}
	if total != 1302 {
		t.Fatalf("total = %d, want 1302", total)
	}
	if len(items) != 20 {
		t.Fatalf("len(items) = %d, want 20", len(items))
	}
	if items[0].ID != 1 || items[19].ID != 20 {
		t.Fatalf("page items = %d..%d, want 1..20", items[0].ID, items[19].ID)
	}
}

func TestFetchPage_DropsFailedDetailsSilently(t *testing.T) {
	t.Parallel()

	client := &fakeFetcher{count: 1302, failIDs: map[int]bool{13: true}}
	e := newExplorer(t, client, Options{PageSize: 20})

	e.Refetch()
	snap := waitSettled(t, e)

	if snap.Err != "" {
		t.Fatalf("Err = %q, want no page-level error for a partial failure", snap.Err)
	}
	if len(snap.Items) != 19 {
		t.Fatalf("len(Items) = %d, want 19 (one dropped)", len(snap.Items))
	}
	for _, item := range snap.Items {
		if item.ID == 13 {
			t.Fatal("failed item survived in results")
		}
	}
}

func TestListFailure_SurfacesErrorAndKeepsItems(t *testing.T) {
	t.Parallel()

	client := &fakeFetcher{count: 60}
	e := newExplorer(t, client, Options{PageSize: 20})

	e.Refetch()
	first := waitSettled(t, e)
	if len(first.Items) != 20 {
		t.Fatalf("len(Items) = %d, want 20", len(first.Items))
	}

	client.listErr = &catalog.StatusError{Code: 503, Path: "/items"}
	e.SetPage(2)
	snap := waitSettled(t, e)

	if snap.Err == "" || snap.Err != "api /items returned status 503" {
		t.Fatalf("Err = %q, want status 503 message", snap.Err)
	}
	if len(snap.Items) != 20 {
		t.Fatalf("len(Items) = %d, want previous page retained", len(snap.Items))
	}
}

func TestSetPage_SamePageDoesNotRefetch(t *testing.T) {
	t.Parallel()

	client := &fakeFetcher{count: 60}
	e := newExplorer(t, client, Options{PageSize: 20})

	e.Refetch()
	waitSettled(t, e)
	calls := client.listCalls.Load()

	e.SetPage(1)
	time.Sleep(20 * time.Millisecond)
	if got := client.listCalls.Load(); got != calls {
		t.Fatalf("listCalls = %d, want %d (no refetch on same page)", got, calls)
	}
}

func TestFilterAndSortChanges_DoNotRefetch(t *testing.T) {
	t.Parallel()

	client := &fakeFetcher{count: 60}
	e := newExplorer(t, client, Options{PageSize: 20})

	e.Refetch()
	waitSettled(t, e)
	calls := client.listCalls.Load()

	e.SetFilters(Filters{Query: "item-00", Category: CategoryAll})
	e.SetSort(Sort{Field: SortByName, Order: Descending})
	snap := e.Snapshot()

	if got := client.listCalls.Load(); got != calls {
		t.Fatalf("listCalls = %d, want %d (filters never fetch)", got, calls)
	}
	if len(snap.Items) != 9 {
		t.Fatalf("len(Items) = %d, want 9 matching item-00*", len(snap.Items))
	}
	if snap.Items[0].Name != "item-009" {
		t.Fatalf("first item = %q, want item-009 (name desc)", snap.Items[0].Name)
	}
}

func TestFilterComposition_OrderIndependent(t *testing.T) {
	t.Parallel()

	items := []catalog.Item{
		{ID: 1, Name: "aurelia", Tags: []catalog.Tag{{Name: "flora"}}},
		{ID: 2, Name: "aurex", Tags: []catalog.Tag{{Name: "ember"}}},
		{ID: 3, Name: "aurora", Tags: []catalog.Tag{{Name: "flora"}}},
		{ID: 4, Name: "brontes", Tags: []catalog.Tag{{Name: "flora"}}},
	}
	favs := map[int]struct{}{1: {}, 3: {}, 4: {}}

	full := Filters{Query: "aur", Category: "flora", FavoritesOnly: true}

	// Apply the three constraints one at a time in two different orders and
	// compare against the combined application.
	stepwise := applyFilters(items, Filters{Query: "aur", Category: CategoryAll}, nil)
	stepwise = applyFilters(stepwise, Filters{Category: "flora"}, nil)
	stepwise = applyFilters(stepwise, Filters{Category: CategoryAll, FavoritesOnly: true}, favs)

	reversed := applyFilters(items, Filters{Category: CategoryAll, FavoritesOnly: true}, favs)
	reversed = applyFilters(reversed, Filters{Category: "flora"}, nil)
	reversed = applyFilters(reversed, Filters{Query: "aur", Category: CategoryAll}, nil)

	combined := applyFilters(items, full, favs)

	want := []int{1, 3}
	for name, got := range map[string][]catalog.Item{
		"stepwise": stepwise, "reversed": reversed, "combined": combined,
	} {
		if len(got) != len(want) {
			t.Fatalf("%s yielded %d items, want %d", name, len(got), len(want))
		}
		for i, item := range got {
			if item.ID != want[i] {
				t.Fatalf("%s item %d = id %d, want %d", name, i, item.ID, want[i])
			}
		}
	}
}

func TestSortItems(t *testing.T) {
	t.Parallel()

	base := []catalog.Item{
		{ID: 3, Name: "b"},
		{ID: 1, Name: "a"},
		{ID: 2, Name: "c"},
	}

	byID := append([]catalog.Item(nil), base...)
	sortItems(byID, Sort{Field: SortByID, Order: Ascending})
	if byID[0].ID != 1 || byID[1].ID != 2 || byID[2].ID != 3 {
		t.Fatalf("id asc = %v, want [1 2 3]", ids(byID))
	}

	byIDDesc := append([]catalog.Item(nil), base...)
	sortItems(byIDDesc, Sort{Field: SortByID, Order: Descending})
	if byIDDesc[0].ID != 3 || byIDDesc[2].ID != 1 {
		t.Fatalf("id desc = %v, want [3 2 1]", ids(byIDDesc))
	}

	byName := append([]catalog.Item(nil), base...)
	sortItems(byName, Sort{Field: SortByName, Order: Descending})
	if byName[0].Name != "c" || byName[1].Name != "b" || byName[2].Name != "a" {
		t.Fatalf("name desc = %v, want [c b a]", names(byName))
	}
}

func TestSnapshot_PaginationBoundaries(t *testing.T) {
	t.Parallel()

	client := &fakeFetcher{count: 45}
	e := newExplorer(t, client, Options{PageSize: 20})

	e.Refetch()
	snap := waitSettled(t, e)
	if snap.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want ceil(45/20) = 3", snap.TotalPages)
	}
	if snap.HasPrevious {
		t.Fatal("HasPrevious = true on page 1, want false")
	}
	if !snap.HasNext {
		t.Fatal("HasNext = false on page 1 of 3, want true")
	}

	e.SetPage(3)
	snap = waitSettled(t, e)
	if snap.HasNext {
		t.Fatal("HasNext = true on last page, want false")
	}
	if !snap.HasPrevious {
		t.Fatal("HasPrevious = false on page 3, want true")
	}
	if len(snap.Items) != 5 {
		t.Fatalf("len(Items) = %d, want 5 on the final short page", len(snap.Items))
	}
}

func TestFavoritesFilter_TracksStore(t *testing.T) {
	t.Parallel()

	client := &fakeFetcher{count: 20}
	favs := newFavorites(t)
	e := New(t.Context(), client, favs, Options{
		PageSize: 20,
		Logger:   slog.New(slog.DiscardHandler),
	})
	t.Cleanup(e.Close)

	e.Refetch()
	waitSettled(t, e)

	favs.Toggle(5)
	favs.Toggle(9)
	e.SetFilters(Filters{Category: CategoryAll, FavoritesOnly: true})

	snap := e.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2 favorites", len(snap.Items))
	}
	if snap.Items[0].ID != 5 || snap.Items[1].ID != 9 {
		t.Fatalf("favorite items = %v, want [5 9]", ids(snap.Items))
	}
}

func ids(items []catalog.Item) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func names(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}
