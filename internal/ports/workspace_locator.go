package ports

// WorkspaceLocator finds the directory holding bmectl.yaml, starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
