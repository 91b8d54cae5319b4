package ports

import "github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"

// SessionStore persists the auth context between runs.
// Load returns a zero Session (and no error) when nothing is stored.
type SessionStore interface {
	Load() (domain.Session, error)
	Save(s domain.Session) error
	Clear() error
}
