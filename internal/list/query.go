package list

import (
	"net/url"
	"strconv"

	"console/internal/config"
	"console/internal/utils"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Query is everything that describes "what should currently be fetched"
// for one list view: search text, per-column filters, sort and paging.
// Every setter that narrows or re-shapes the result set snaps back to
// page 1; only SetPage leaves the rest alone.
type Query struct {
	Search    string
	Filters   map[string]string
	SortField string
	SortOrder SortOrder
	Page      int
	PageSize  int
}

func NewQuery(pageSize int) Query {
	return Query{
		Filters:   map[string]string{},
		SortOrder: Asc,
		Page:      1,
		PageSize:  config.ClampPageSize(pageSize),
	}
}

func (q *Query) SetSearch(text string) {
	q.Search = utils.TrimOrEmpty(text)
	q.Page = 1
}

// SetFilter sets or clears one filter key. An empty value removes the key
// (the "Semua" option in the status dropdowns).
func (q *Query) SetFilter(key, value string) {
	if q.Filters == nil {
		q.Filters = map[string]string{}
	}
	if utils.TrimOrEmpty(value) == "" {
		delete(q.Filters, key)
	} else {
		q.Filters[key] = utils.TrimOrEmpty(value)
	}
	q.Page = 1
}

// SetSort toggles the order when the field is clicked again, otherwise
// switches to the new field ascending. Ascending-on-first-click is the
// policy for every list view; date-sorted views get descending by passing
// Desc to SetSortOrder explicitly after the switch.
func (q *Query) SetSort(field string) {
	if field == q.SortField {
		if q.SortOrder == Asc {
			q.SortOrder = Desc
		} else {
			q.SortOrder = Asc
		}
	} else {
		q.SortField = field
		q.SortOrder = Asc
	}
}

func (q *Query) SetSortOrder(order SortOrder) {
	if order == Desc {
		q.SortOrder = Desc
	} else {
		q.SortOrder = Asc
	}
}

// SetPage moves to page n without touching anything else. No validation
// against total_pages here: out-of-range pages go to the server, which
// answers with an empty items array.
func (q *Query) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	q.Page = n
}

func (q *Query) SetPageSize(n int) {
	q.PageSize = config.ClampPageSize(n)
	q.Page = 1
}

// Clone copies the query including the filter map, so an in-flight fetch
// keeps the descriptor it was issued for.
func (q Query) Clone() Query {
	out := q
	out.Filters = make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		out.Filters[k] = v
	}
	return out
}

// Values serializes the descriptor into the wire query parameters:
// search, one key per filter, sort_by, sort_order, page, page_size.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for key, val := range q.Filters {
		v.Set(key, val)
	}
	if q.SortField != "" {
		v.Set("sort_by", q.SortField)
		v.Set("sort_order", string(q.SortOrder))
	}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	return v
}
