package ports

import "github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"

// ConfigLoader resolves the effective configuration for a workspace root.
// An empty root means defaults plus environment only.
type ConfigLoader interface {
	Load(root string) (domain.Config, error)
}
