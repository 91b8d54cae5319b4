package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/apiclient"
)

func lookup(t *testing.T, name string) domain.Resource {
	t.Helper()
	r, err := domain.DefaultCatalog().Lookup(name)
	require.NoError(t, err)
	return r
}

func TestLoadView_ListLoadingThenReadyVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ddex/messages", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"messages":[{"id":"m1","message_type":"ERN","title":"Night Drive","status":"sent"}],"total":1}`))
	}))
	defer srv.Close()

	uc := NewLoadView(apiclient.New(srv.URL+"/api", nil))

	var view domain.ViewState
	seq := view.Begin()
	require.Equal(t, domain.StatusLoading, view.Status)

	res, err := uc.List(context.Background(), lookup(t, "ddex.messages"), domain.FirstPage(20), nil)
	require.NoError(t, err)
	require.True(t, view.Resolve(seq, res.Records, res.Page))

	assert.Equal(t, domain.StatusReady, view.Status)
	require.Len(t, view.Records, 1)
	assert.Equal(t, domain.Record{"id": "m1", "message_type": "ERN", "title": "Night Drive", "status": "sent"}, view.Records[0])
	assert.False(t, view.Page.HasNext())
	assert.False(t, view.Page.HasPrev())
}

func TestLoadView_FailureShowsDetailOrFallback(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
		want string
	}{
		{"detail", http.StatusNotFound, `{"detail":"Sponsor not found"}`, "Sponsor not found"},
		{"no detail", http.StatusInternalServerError, `Internal Server Error`, domain.FallbackMessage},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.code)
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()

			uc := NewLoadView(apiclient.New(srv.URL+"/api", nil))
			var view domain.ViewState
			seq := view.Begin()

			_, err := uc.List(context.Background(), lookup(t, "sponsorship.sponsors"), domain.FirstPage(20), nil)
			require.Error(t, err)
			view.Fail(seq, err)

			assert.Equal(t, domain.StatusFailed, view.Status)
			assert.Equal(t, c.want, view.Err)
		})
	}
}

func TestLoadView_PaginationFetchesNeighbourPages(t *testing.T) {
	var (
		mu    sync.Mutex
		pages []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"licenses":[{"id":"p` + page + `"}],"total":3,"page":` + page + `}`))
	}))
	defer srv.Close()

	uc := NewLoadView(apiclient.New(srv.URL+"/api", nil))
	res := lookup(t, "licensing.licenses")
	ctx := context.Background()

	first, err := uc.List(ctx, res, domain.FirstPage(1), nil)
	require.NoError(t, err)
	_, ok := first.Page.Prev()
	assert.False(t, ok, "prev must be disabled on page 1")

	next, ok := first.Page.Next()
	require.True(t, ok)
	second, err := uc.List(ctx, res, next, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Page.Number)

	next, ok = second.Page.Next()
	require.True(t, ok)
	third, err := uc.List(ctx, res, next, nil)
	require.NoError(t, err)
	_, ok = third.Page.Next()
	assert.False(t, ok, "next must be disabled on the last page")

	prev, ok := third.Page.Prev()
	require.True(t, ok)
	_, err = uc.List(ctx, res, prev, nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"1", "2", "3", "2"}, pages)
}

func TestLoadView_FiltersAreValidatedBeforeAnyCall(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "sync", r.URL.Query().Get("license_type"))
		_, _ = w.Write([]byte(`{"licenses":[]}`))
	}))
	defer srv.Close()

	uc := NewLoadView(apiclient.New(srv.URL+"/api", nil))
	res := lookup(t, "licensing.licenses")

	_, err := uc.List(context.Background(), res, domain.FirstPage(20), map[string]string{"colour": "red"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "colour")
	assert.EqualValues(t, 0, hits.Load())

	_, err = uc.List(context.Background(), res, domain.FirstPage(20), map[string]string{"license_type": "sync"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())
}

func TestLoadView_NonPageableSkipsPagingParams(t *testing.T) {
	api := &recordingAPI{replies: []reply{{body: `[{"id":"x"}]`}}}
	res := domain.Resource{Name: "t", ListPath: "/t", Columns: []domain.Column{{Title: "ID", Path: "$.id"}}}

	out, err := NewLoadView(api).List(context.Background(), res, domain.FirstPage(20), nil)
	require.NoError(t, err)
	require.Len(t, api.Calls(), 1)
	assert.Empty(t, api.Calls()[0].Query.Get("page"))
	assert.False(t, out.Page.HasNext())
}

func TestLoadView_Show(t *testing.T) {
	api := &recordingAPI{replies: []reply{{body: `{"id":"d1","deal_name":"Summer"}`}}}
	uc := NewLoadView(api)

	rec, err := uc.Show(context.Background(), lookup(t, "sponsorship.deals"), "d1")
	require.NoError(t, err)
	assert.Equal(t, "Summer", rec["deal_name"])
	assert.Equal(t, "/sponsorship/deals/d1", api.Calls()[0].Path)

	_, err = uc.Show(context.Background(), lookup(t, "sponsorship.deals"), "")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	assert.Len(t, api.Calls(), 1)
}

func TestLoadView_UnsupportedOperation(t *testing.T) {
	api := &recordingAPI{}
	_, err := NewLoadView(api).List(context.Background(), lookup(t, "ddex.ern"), domain.FirstPage(20), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotSupported))
	assert.True(t, strings.Contains(err.Error(), "ddex.ern"))
	assert.Empty(t, api.Calls())
}
