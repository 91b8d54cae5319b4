package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/ports"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase/columns"
)

// LoadView fetches the data behind a read view.
type LoadView struct {
	api ports.APICaller
}

func NewLoadView(api ports.APICaller) *LoadView {
	return &LoadView{api: api}
}

// ListResult is one page of a list view.
type ListResult struct {
	Records   []domain.Record
	Page      domain.Page
	RequestID string
}

// List issues one GET for the requested page. Filters must be declared by the resource.
func (uc *LoadView) List(ctx context.Context, res domain.Resource, page domain.Page, filters map[string]string) (ListResult, error) {
	if !res.CanList() {
		return ListResult{}, notSupported("view.list", res, "list")
	}

	var bad []domain.FieldError
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !res.AllowsFilter(k) {
			bad = append(bad, domain.FieldError{
				Field:   k,
				Message: fmt.Sprintf("unknown filter (allowed: %s)", allowed(res.Filters)),
			})
		}
	}
	if len(bad) > 0 {
		return ListResult{}, &domain.ValidationError{Fields: bad}
	}

	if page.Number < 1 {
		page.Number = 1
	}
	q := page.Query(filters)
	if !res.Pageable {
		q.Del("page")
		q.Del("limit")
	}

	resp, err := uc.api.Do(ctx, domain.GetCall(res.ListPath, q))
	if err != nil {
		return ListResult{}, err
	}

	recs, err := columns.Records(resp.Body, res.ListKey)
	if err != nil {
		return ListResult{}, err
	}

	meta := domain.Page{Number: 1, Count: len(recs), Known: true, Total: len(recs)}
	if res.Pageable {
		meta = columns.PageMeta(resp.Body, page, len(recs))
	}

	return ListResult{Records: recs, Page: meta, RequestID: resp.RequestID}, nil
}

// Show issues one GET for a single record. id is required when the item path has {{id}}.
func (uc *LoadView) Show(ctx context.Context, res domain.Resource, id string) (domain.Record, error) {
	if !res.CanShow() {
		return nil, notSupported("view.show", res, "show")
	}

	path, err := domain.ExpandPath(res.ItemPath, domain.PathVars{"id": id})
	if err != nil {
		return nil, err
	}

	resp, err := uc.api.Do(ctx, domain.GetCall(path, nil))
	if err != nil {
		return nil, err
	}
	return columns.Item(resp.Body)
}

func notSupported(op string, res domain.Resource, what string) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidInput,
		Path: res.Name,
		Err:  fmt.Errorf("%s: %w", what, domain.ErrNotSupported),
	}
}

func allowed(filters []string) string {
	if len(filters) == 0 {
		return "none"
	}
	return strings.Join(filters, ", ")
}
