package api

import (
	"bytes"
	"encoding/json"
)

// Page is one server round trip worth of a collection: the items plus the
// pagination counters that came with them. Items are raw; typed decoding
// is the controller's job.
type Page struct {
	Items      []json.RawMessage `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// decodePage accepts either the pagination envelope or, for legacy
// endpoints, a bare JSON array. A bare array means the server sent the
// whole collection in one shot.
func decodePage(body []byte) (Page, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page{}, err
		}
		return Page{
			Items:      items,
			Total:      len(items),
			Page:       1,
			PageSize:   len(items),
			TotalPages: 1,
		}, nil
	}

	var p Page
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return Page{}, err
	}
	if p.Items == nil {
		p.Items = []json.RawMessage{}
	}
	return p, nil
}
