package explorer

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/trovecli/trove/internal/catalog"
	"github.com/trovecli/trove/internal/favorites"
)

const defaultPageSize = 20

// Snapshot is the explorer state handed to the presentation layer: the
// current filtered and sorted page plus loading, error, and pagination
// flags. It is a copy; mutating it does not affect the explorer.
type Snapshot struct {
	Items       []catalog.Item
	Loading     bool
	Err         string
	Page        int
	TotalPages  int
	TotalCount  int
	HasNext     bool
	HasPrevious bool
	Filters     Filters
	Sort        Sort
}

// Options seed the explorer's initial state.
type Options struct {
	PageSize    int
	InitialPage int
	Filters     Filters
	Sort        Sort
	Logger      *slog.Logger
}

// Explorer drives the fetch-and-present pipeline: it fetches one page of
// references, resolves full items in parallel, and applies the client-side
// filter and sort stage over the resolved page.
//
// Each fetch cycle owns one cancellation context. Starting a new cycle
// (page change, refetch, Close) cancels the previous cycle's context, so
// stale in-flight requests reject with a cancellation error and are
// discarded silently. Filter and sort changes never trigger a fetch; they
// only re-run the pure stage over already-fetched data.
type Explorer struct {
	client   catalog.Fetcher
	favs     *favorites.Store
	logger   *slog.Logger
	pageSize int
	baseCtx  context.Context

	mu      sync.Mutex
	page    int
	filters Filters
	sort    Sort
	items   []catalog.Item // last successfully resolved page
	total   int
	loading bool
	errMsg  string
	cancel  context.CancelFunc
	gen     uint64
}

// New builds an Explorer. No fetch happens until Refetch or SetPage is
// called. ctx bounds the lifetime of all fetch cycles.
func New(ctx context.Context, client catalog.Fetcher, favs *favorites.Store, opts Options) *Explorer {
	if ctx == nil {
		ctx = context.Background()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page := opts.InitialPage
	if page < 1 {
		page = 1
	}
	filters := opts.Filters
	if filters.Category == "" {
		filters.Category = CategoryAll
	}
	srt := opts.Sort
	if srt.Field == "" {
		srt = DefaultSort()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Explorer{
		client:   client,
		favs:     favs,
		logger:   logger,
		pageSize: pageSize,
		baseCtx:  ctx,
		page:     page,
		filters:  filters,
		sort:     srt,
	}
}

// Page returns the current page number.
func (e *Explorer) Page() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page
}

// SetPage moves to page p (clamped to >= 1) and starts a fetch cycle when
// the effective page actually changes.
func (e *Explorer) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	e.mu.Lock()
	if p == e.page {
		e.mu.Unlock()
		return
	}
	e.page = p
	e.mu.Unlock()
	e.startCycle()
}

// Refetch starts a fresh cycle for the current page, superseding any cycle
// in flight. This is the only retry affordance; failures are never retried
// automatically.
func (e *Explorer) Refetch() {
	e.startCycle()
}

// SetFilters replaces the filter settings. No fetch is triggered; the filter
// stage re-runs over the last fetched page on the next Snapshot.
func (e *Explorer) SetFilters(f Filters) {
	if f.Category == "" {
		f.Category = CategoryAll
	}
	e.mu.Lock()
	e.filters = f
	e.mu.Unlock()
}

// SetQuery updates only the query filter. Callers feed this through a
// debouncer so a burst of keystrokes settles into one update.
func (e *Explorer) SetQuery(q string) {
	e.mu.Lock()
	e.filters.Query = q
	e.mu.Unlock()
}

// Filters returns the current filter settings.
func (e *Explorer) Filters() Filters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

// SetSort replaces the sort settings without refetching.
func (e *Explorer) SetSort(s Sort) {
	e.mu.Lock()
	e.sort = s
	e.mu.Unlock()
}

// Sort returns the current sort settings.
func (e *Explorer) Sort() Sort {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sort
}

// Categories returns the distinct tag names carried by the last fetched
// page, lowercased and sorted. The remote API offers no category index, so
// the choices are derived from the items in hand.
func (e *Explorer) Categories() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, item := range e.items {
		for _, tag := range item.Tags {
			name := strings.ToLower(tag.Name)
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Close cancels any in-flight cycle.
func (e *Explorer) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Snapshot applies the filter and sort stage to the last fetched page and
// returns it together with loading, error, and pagination state.
func (e *Explorer) Snapshot() Snapshot {
	e.mu.Lock()
	items := make([]catalog.Item, len(e.items))
	copy(items, e.items)
	filters := e.filters
	srt := e.sort
	page := e.page
	total := e.total
	loading := e.loading
	errMsg := e.errMsg
	e.mu.Unlock()

	var favs map[int]struct{}
	if e.favs != nil {
		favs = e.favs.Set()
	}
	filtered := applyFilters(items, filters, favs)
	sortItems(filtered, srt)

	totalPages := (total + e.pageSize - 1) / e.pageSize
	return Snapshot{
		Items:       filtered,
		Loading:     loading,
		Err:         errMsg,
		Page:        page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
		Filters:     filters,
		Sort:        srt,
	}
}

// startCycle cancels the previous cycle and launches a new one for the
// current page.
func (e *Explorer) startCycle() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(e.baseCtx)
	e.cancel = cancel
	e.gen++
	gen := e.gen
	page := e.page
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()

	go e.runCycle(ctx, gen, page)
}

func (e *Explorer) runCycle(ctx context.Context, gen uint64, page int) {
	items, total, err := e.fetchPage(ctx, page)
	if err != nil {
		if catalog.IsCanceled(err) {
			// Superseded cycle; the newer cycle owns the state now.
			return
		}
		e.mu.Lock()
		if gen == e.gen {
			e.loading = false
			e.errMsg = pageErrorMessage(err)
		}
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	if gen == e.gen {
		e.items = items
		e.total = total
		e.loading = false
		e.errMsg = ""
	}
	e.mu.Unlock()
}

// fetchPage performs one complete cycle: list fetch, then parallel detail
// fetches for every reference. Detail failures drop the item rather than
// failing the page; one bad record must not blank the whole page.
func (e *Explorer) fetchPage(ctx context.Context, page int) ([]catalog.Item, int, error) {
	offset := (page - 1) * e.pageSize
	list, err := e.client.FetchList(ctx, offset, e.pageSize)
	if err != nil {
		return nil, 0, err
	}

	resolved := make([]*catalog.Item, len(list.Results))
	var g errgroup.Group
	for i, ref := range list.Results {
		g.Go(func() error {
			id := catalog.ExtractID(ref.URL)
			item, err := e.client.FetchByID(ctx, id)
			if err != nil {
				if !catalog.IsCanceled(err) {
					e.logger.Debug("detail fetch dropped", "name", ref.Name, "id", id, "error", err)
				}
				return nil
			}
			resolved[i] = item
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	items := make([]catalog.Item, 0, len(resolved))
	for _, item := range resolved {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, list.Count, nil
}

// pageErrorMessage maps a page-level failure to the message shown to the
// user: HTTP failures carry their status, everything else collapses to a
// generic transport message.
func pageErrorMessage(err error) string {
	var se *catalog.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	return "failed to reach the catalog service"
}
