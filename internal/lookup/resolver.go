package lookup

import (
	"context"
	"sync"

	"console/internal/utils"

	gocache "github.com/patrickmn/go-cache"
)

// Source loads the full id -> label mapping for one lookup collection
// (accounts, departments, vehicle codes, ...).
type Source func(ctx context.Context) (map[string]string, error)

// Resolver labels foreign keys for display. The mapping is fetched once
// per page mount and then treated as read-only; Invalidate is the only
// way to refetch, and only an explicit user action should call it.
// A failed fetch degrades gracefully: Label falls back to the raw id and
// the list render goes on without the enrichment.
type Resolver struct {
	name  string
	fetch Source

	mu     sync.Mutex
	loaded bool
	cache  *gocache.Cache
}

func NewResolver(name string, fetch Source) *Resolver {
	return &Resolver{
		name:  name,
		fetch: fetch,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Label returns the display label for id, fetching the mapping on first
// use. Unknown ids and fetch failures both fall back to the id itself.
func (r *Resolver) Label(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	r.ensureLoaded(ctx)
	if v, ok := r.cache.Get(id); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return id
}

// Known reports whether the id resolved to a real label.
func (r *Resolver) Known(ctx context.Context, id string) bool {
	r.ensureLoaded(ctx)
	_, ok := r.cache.Get(id)
	return ok
}

// Invalidate drops the cached mapping so the next Label call refetches.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.cache.Flush()
}

func (r *Resolver) ensureLoaded(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return
	}
	// One attempt per mount, success or failure. A failing lookup source
	// must not be re-hit on every rendered row.
	r.loaded = true

	labels, err := r.fetch(ctx)
	if err != nil {
		utils.LogEvent("", "lookup", "fetch_failed", r.name+" err="+err.Error())
		return
	}
	for id, label := range labels {
		r.cache.Set(id, label, gocache.NoExpiration)
	}
	utils.LogEvent("", "lookup", "loaded", r.name)
}
