package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

type memSessions struct {
	mu      sync.Mutex
	s       domain.Session
	cleared int
}

func (m *memSessions) Load() (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *memSessions) Save(s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *memSessions) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = domain.Session{}
	m.cleared++
	return nil
}

func fixedID() string { return "req-1" }

func TestDo_SendsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotID, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(RequestIDHeader)
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[]}`))
	}))
	defer srv.Close()

	sessions := &memSessions{s: domain.Session{AccessToken: "tok"}}
	c := New(srv.URL+"/api", sessions, WithRequestID(fixedID))

	res, err := c.Do(context.Background(), domain.GetCall("/ddex/messages", domain.Page{Number: 1, Size: 20}.Query(nil)))
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "req-1", gotID)
	assert.Equal(t, "/api/ddex/messages?limit=20&page=1", gotPath)
	assert.Equal(t, "req-1", res.RequestID)
	assert.JSONEq(t, `{"messages":[]}`, string(res.Body))
}

func TestDo_AnonymousSkipsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", &memSessions{s: domain.Session{AccessToken: "tok"}})
	_, err := c.Do(context.Background(), domain.Call{Method: http.MethodPost, Path: "/auth/login", Anonymous: true, JSON: map[string]any{}})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDo_DetailOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"UPC already assigned"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	_, err := c.Do(context.Background(), domain.GetCall("/gs1/products", nil))
	require.Error(t, err)

	var ae *domain.APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "UPC already assigned", domain.Message(err))
	assert.True(t, domain.IsKind(err, domain.KindAPI))
}

func TestDo_UnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer srv.Close()

	sessions := &memSessions{s: domain.Session{AccessToken: "stale"}}
	c := New(srv.URL+"/api", sessions)

	_, err := c.Do(context.Background(), domain.GetCall("/tax/payments", nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
	assert.Equal(t, domain.SessionExpiredMessage, domain.Message(err))
	assert.Equal(t, 1, sessions.cleared)
	assert.True(t, sessions.s.Empty())
}

func TestDo_UnauthorizedWithoutSessionKeepsDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid email or password"}`))
	}))
	defer srv.Close()

	sessions := &memSessions{}
	c := New(srv.URL+"/api", sessions)

	_, err := c.Do(context.Background(), domain.Call{Method: http.MethodPost, Path: "/auth/login", Anonymous: true, JSON: map[string]any{}})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", domain.Message(err))
	assert.Equal(t, 0, sessions.cleared)
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL + "/api"
	srv.Close()

	_, err := New(base, nil).Do(context.Background(), domain.GetCall("/auth/me", nil))
	require.Error(t, err)

	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, domain.TransportConn, te.Kind)
	assert.True(t, domain.IsKind(err, domain.KindExecution))
}

func TestDo_JSONBodyVerbatim(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/api", nil).Do(context.Background(), domain.Call{
		Method: http.MethodPost,
		Path:   "/sponsorship/deals",
		JSON:   map[string]any{"base_fee": 2500.0, "start_date": "2024-03-15T00:00:00.000Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"base_fee": 2500.0, "start_date": "2024-03-15T00:00:00.000Z"}, got)
}
