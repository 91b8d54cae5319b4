package domain

import (
	"net/url"
	"sort"
	"strconv"
)

// Page is the paging position of a read view.
// Number is 1-based. Total and TotalPages are only meaningful when Known is set.
type Page struct {
	Number     int
	Size       int
	Total      int
	TotalPages int
	Known      bool
	Count      int // records in the last response
}

// FirstPage returns page 1 with the given size (clamped to at least 1).
func FirstPage(size int) Page {
	if size < 1 {
		size = 1
	}
	return Page{Number: 1, Size: size}
}

// LastPage returns the last page number, or 0 when the backend gave no totals.
func (p Page) LastPage() int {
	if !p.Known {
		return 0
	}
	if p.TotalPages > 0 {
		return p.TotalPages
	}
	if p.Size <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext is true below the last page. Without totals a full page implies more may follow.
func (p Page) HasNext() bool {
	if p.Known {
		return p.Number < p.LastPage()
	}
	return p.Size > 0 && p.Count >= p.Size
}

// Next returns the following page; ok is false at the last page.
func (p Page) Next() (Page, bool) {
	if !p.HasNext() {
		return p, false
	}
	return Page{Number: p.Number + 1, Size: p.Size}, true
}

// Prev returns the preceding page; ok is false at page 1.
func (p Page) Prev() (Page, bool) {
	if !p.HasPrev() {
		return p, false
	}
	return Page{Number: p.Number - 1, Size: p.Size}, true
}

// Query renders page, limit and filters as query parameters.
// Empty filter values are dropped.
func (p Page) Query(filters map[string]string) url.Values {
	q := url.Values{}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := filters[k]; v != "" {
			q.Set(k, v)
		}
	}
	if p.Number > 0 {
		q.Set("page", strconv.Itoa(p.Number))
	}
	if p.Size > 0 {
		q.Set("limit", strconv.Itoa(p.Size))
	}
	return q
}

// Label renders "page 2/5" or "page 2" without totals.
func (p Page) Label() string {
	n := p.Number
	if n < 1 {
		n = 1
	}
	if last := p.LastPage(); last > 0 {
		return "page " + strconv.Itoa(n) + "/" + strconv.Itoa(last)
	}
	return "page " + strconv.Itoa(n)
}
