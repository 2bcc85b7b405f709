package list

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"console/internal/api"
	"console/internal/domain"
	"console/internal/utils"

	"github.com/looplab/fsm"
)

// Fetch lifecycle states. The machine replaces the implicit
// "effect re-runs on every change" wiring with explicit transitions, and
// the ticket check below is the guard that keeps stale responses out.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

const (
	eventLoad    = "load"
	eventSucceed = "succeed"
	eventFail    = "fail"
)

// Fetcher is the slice of the API client the controller needs. *api.Client
// satisfies it; tests may substitute their own.
type Fetcher interface {
	List(ctx context.Context, path string, query url.Values) (api.Page, error)
	Create(ctx context.Context, path string, payload any) (json.RawMessage, error)
	Update(ctx context.Context, path, id string, payload any) (json.RawMessage, error)
	Delete(ctx context.Context, path, id string) error
}

// Result is the atomically-replaced outcome of the last settled fetch.
// All counters come from the same server response as Items; they are
// never mixed across round trips.
type Result[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	Err        error
	State      string
}

// Controller owns one list view: the query descriptor, the last result,
// and the create/update/delete operations that loop back into a refresh.
// One controller per mounted page; nothing is shared across pages.
type Controller[T any] struct {
	client   Fetcher
	path     string
	resource string

	mu      sync.Mutex
	query   Query
	issued  uint64 // ticket of the most recently issued fetch
	pending int    // fetches in flight
	closed  bool
	machine *fsm.FSM

	items      []T
	total      int
	page       int
	pageSize   int
	totalPages int
	err        error
}

// NewController builds an idle controller for the collection at path.
// resource names the entity kind in logs ("contracts", "drivers", ...).
func NewController[T any](client Fetcher, resource, path string, q Query) *Controller[T] {
	return &Controller[T]{
		client:   client,
		path:     path,
		resource: resource,
		query:    q,
		machine: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				{Name: eventLoad, Src: []string{StateIdle, StateReady, StateFailed}, Dst: StateLoading},
				{Name: eventSucceed, Src: []string{StateLoading}, Dst: StateReady},
				{Name: eventFail, Src: []string{StateLoading}, Dst: StateFailed},
			},
			fsm.Callbacks{},
		),
	}
}

// Query returns a copy of the current descriptor.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Clone()
}

// Reload issues one fetch for the current descriptor. When reloads
// overlap, only the latest ticket's response is applied; earlier ones are
// dropped on arrival, so the rendered page always matches the descriptor
// the user last produced.
func (c *Controller[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.issued++
	ticket := c.issued
	q := c.query.Clone()
	c.pending++
	if c.machine.Current() != StateLoading {
		_ = c.machine.Event(ctx, eventLoad)
	}
	c.mu.Unlock()

	page, err := c.client.List(ctx, c.path, q.Values())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--

	if c.closed || ticket != c.issued {
		utils.LogEvent("", c.resource, "stale_response_dropped",
			fmt.Sprintf("ticket=%d latest=%d", ticket, c.issued))
		return nil
	}

	if err == nil {
		var decoded []T
		decoded, err = DecodeItems[T](page.Items)
		if err == nil {
			c.items = decoded
			c.total = page.Total
			c.page = page.Page
			c.pageSize = page.PageSize
			c.totalPages = page.TotalPages
			c.err = nil
			_ = c.machine.Event(ctx, eventSucceed)
			return nil
		}
	}

	// Failure clears the page outright; stale rows must not linger under
	// an error banner.
	c.items = nil
	c.total = 0
	c.page = q.Page
	c.pageSize = q.PageSize
	c.totalPages = 0
	c.err = err
	_ = c.machine.Event(ctx, eventFail)
	return err
}

// Loading reports whether a fetch is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}

// Snapshot returns the current result; Items is copied so callers can
// range freely while a reload lands.
func (c *Controller[T]) Snapshot() Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Result[T]{
		Items:      items,
		Total:      c.total,
		Page:       c.page,
		PageSize:   c.pageSize,
		TotalPages: c.totalPages,
		Err:        c.err,
		State:      c.machine.Current(),
	}
}

// Close marks the controller torn down (navigation away). In-flight
// responses resolving afterwards are dropped.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Search, Filter, Sort, GoToPage and Resize mutate the descriptor and
// immediately refetch, which is the whole contract of a list page:
// descriptor change -> one request.

func (c *Controller[T]) Search(ctx context.Context, text string) error {
	c.mu.Lock()
	c.query.SetSearch(text)
	c.mu.Unlock()
	return c.Reload(ctx)
}

func (c *Controller[T]) Filter(ctx context.Context, key, value string) error {
	c.mu.Lock()
	c.query.SetFilter(key, value)
	c.mu.Unlock()
	return c.Reload(ctx)
}

func (c *Controller[T]) Sort(ctx context.Context, field string) error {
	c.mu.Lock()
	c.query.SetSort(field)
	c.mu.Unlock()
	return c.Reload(ctx)
}

func (c *Controller[T]) GoToPage(ctx context.Context, n int) error {
	c.mu.Lock()
	c.query.SetPage(n)
	c.mu.Unlock()
	return c.Reload(ctx)
}

func (c *Controller[T]) Resize(ctx context.Context, pageSize int) error {
	c.mu.Lock()
	c.query.SetPageSize(pageSize)
	c.mu.Unlock()
	return c.Reload(ctx)
}

// Create POSTs the payload and, on success, refetches with the current
// descriptor unchanged. Staying on the current page/sort is deliberate:
// the new row shows up wherever the active sort puts it. On failure the
// previous result stays rendered and the server message is returned.
func (c *Controller[T]) Create(ctx context.Context, payload any) error {
	if _, err := c.client.Create(ctx, c.path, payload); err != nil {
		return err
	}
	utils.LogEvent("", c.resource, "create", "ok")
	return c.Reload(ctx)
}

// Update PUTs the payload for id, then refetches.
func (c *Controller[T]) Update(ctx context.Context, id string, payload any) error {
	if _, err := c.client.Update(ctx, c.path, id, payload); err != nil {
		return err
	}
	utils.LogEvent("", c.resource, "update", "id="+id)
	return c.Reload(ctx)
}

// Delete removes id and refetches. When the deleted row was the only one
// on the current page and we are past page 1, the page number is
// decremented first so the refetch does not land on an empty page.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	lastOnPage := len(c.items) == 1 && c.query.Page > 1
	c.mu.Unlock()

	if err := c.client.Delete(ctx, c.path, id); err != nil {
		return err
	}
	utils.LogEvent("", c.resource, "delete", "id="+id)

	if lastOnPage {
		c.mu.Lock()
		c.query.Page--
		c.mu.Unlock()
	}
	return c.Reload(ctx)
}

// DecodeItems unmarshals the raw page entries into typed values.
func DecodeItems[T any](raw []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, domain.DecodeError{Err: err}
		}
		out = append(out, item)
	}
	return out, nil
}
