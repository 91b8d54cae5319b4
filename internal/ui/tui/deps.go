package tui

import (
	"context"
	"log/slog"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase"
)

// Viewer loads read views.
type Viewer interface {
	List(ctx context.Context, res domain.Resource, page domain.Page, filters map[string]string) (usecase.ListResult, error)
	Show(ctx context.Context, res domain.Resource, id string) (domain.Record, error)
}

// Submitter sends write views.
type Submitter interface {
	Execute(ctx context.Context, res domain.Resource, op domain.Operation, id string, values map[string]string) (usecase.SubmitResult, error)
	Delete(ctx context.Context, res domain.Resource, id string) (usecase.SubmitResult, error)
}

// Authenticator manages the stored session.
type Authenticator interface {
	Current() (domain.Session, error)
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(ctx context.Context) error
}

type Deps struct {
	Catalog *domain.Catalog
	Views   Viewer
	Forms   Submitter
	Auth    Authenticator

	PageSize int

	Logger *slog.Logger
	Debug  bool
}
