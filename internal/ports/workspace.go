package ports

import "github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"

// WorkspaceInitializer writes a starter bmectl.yaml and housekeeping files.
type WorkspaceInitializer interface {
	Init(root string, cfg domain.Config, force bool) error
}
