package sessionstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/ports"
)

const (
	defaultFile = "session.json"
	maskValue   = "********"
)

// JSONStore keeps the auth context in a 0600 JSON file.
type JSONStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

type Option func(*JSONStore)

func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// PathFor resolves the session file: cfg.Session.File (relative to root when not absolute),
// otherwise <user config dir>/bmectl/session.json.
func PathFor(root string, cfg domain.Config) (string, error) {
	if f := strings.TrimSpace(cfg.Session.File); f != "" {
		if filepath.IsAbs(f) || root == "" {
			return filepath.Clean(f), nil
		}
		return filepath.Join(root, f), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", &domain.OpError{
			Op:   "sessionstore.path",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	return filepath.Join(base, "bmectl", defaultFile), nil
}

func NewJSONStore(path string, opts ...Option) *JSONStore {
	s := &JSONStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SessionStore = (*JSONStore)(nil)

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Load() (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, &domain.OpError{
			Op:   "sessionstore.read",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return domain.Session{}, &domain.OpError{
			Op:   "sessionstore.decode",
			Kind: domain.KindInvalidConfig,
			Path: s.path,
			Err:  err,
		}
	}
	return sess, nil
}

// Save writes sess atomically. ExpiresAt is filled from the token's exp claim when absent.
func (s *JSONStore) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = TokenExpiry(sess.Bearer())
	}
	sess.SavedAt = s.now().UTC()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &domain.OpError{
			Op:   "sessionstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return &domain.OpError{
			Op:   "sessionstore.marshal",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{
			Op:   "sessionstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "sessionstore.rename",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	return nil
}

// Clear removes the stored session. A missing file is not an error.
func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &domain.OpError{
			Op:   "sessionstore.clear",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	return nil
}

// TokenExpiry reads the exp claim without verifying the signature.
// The console never trusts claims for authorization; the backend does that.
func TokenExpiry(token string) time.Time {
	if strings.Count(token, ".") != 2 {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time.UTC()
}
