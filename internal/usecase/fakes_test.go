package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

// recordingAPI records calls and answers from a queue of canned responses.
type recordingAPI struct {
	mu      sync.Mutex
	calls   []domain.Call
	replies []reply
	block   chan struct{}
}

type reply struct {
	body string
	err  error
}

func (f *recordingAPI) Do(ctx context.Context, call domain.Call) (domain.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	var r reply
	if len(f.replies) > 0 {
		r = f.replies[0]
		f.replies = f.replies[1:]
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return domain.Response{}, ctx.Err()
		}
	}
	if r.err != nil {
		return domain.Response{}, r.err
	}
	body := r.body
	if body == "" {
		body = "{}"
	}
	return domain.Response{Status: 200, Body: []byte(body), RequestID: "req"}, nil
}

func (f *recordingAPI) Calls() []domain.Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Call, len(f.calls))
	copy(out, f.calls)
	return out
}

type memSessions struct {
	mu      sync.Mutex
	s       domain.Session
	saves   int
	cleared bool
	// expiry is stamped on saved sessions that have none, like the file store does from the token.
	expiry time.Time
}

func (m *memSessions) Load() (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *memSessions) Save(s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = m.expiry
	}
	m.s = s
	m.saves++
	return nil
}

func (m *memSessions) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = domain.Session{}
	m.cleared = true
	return nil
}
