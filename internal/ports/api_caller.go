package ports

import (
	"context"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

// APICaller executes one call against the backend API.
// Non-2xx responses come back as *domain.APIError.
type APICaller interface {
	Do(ctx context.Context, call domain.Call) (domain.Response, error)
}
