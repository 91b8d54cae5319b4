package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/config"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/ports"
)

const envExample = `# Copy to .env and adjust. Values here override bmectl.yaml.
BACKEND_URL=http://localhost:8001
# BMECTL_PAGE_SIZE=20
# BMECTL_TIMEOUT=30s
# BMECTL_OUTPUT=table
`

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init writes bmectl.yaml, .env.example and .gitignore entries under root.
// Existing files are kept unless force is set; .gitignore is only ever appended to.
func (i *Initializer) Init(root string, cfg domain.Config, force bool) error {
	root = filepath.Clean(root)

	logs := filepath.Join(root, ".bmectl", "logs")
	if err := os.MkdirAll(logs, 0o755); err != nil {
		return initErr("mkdir", logs, err)
	}

	rendered, err := config.Render(cfg)
	if err != nil {
		return err
	}

	files := []struct {
		name string
		body []byte
	}{
		{config.FileName, rendered},
		{".env.example", []byte(envExample)},
	}
	for _, f := range files {
		dst := filepath.Join(root, f.name)
		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				continue
			}
		}
		if err := os.WriteFile(dst, f.body, 0o644); err != nil {
			return initErr("write", dst, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return initErr("gitignore", filepath.Join(root, ".gitignore"), err)
	}
	return nil
}

func initErr(step, path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init." + step,
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

func ensureGitignore(root string) error {
	const header = "# bmectl"
	entries := []string{
		".bmectl/",
		".env",
		"session.json",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header + "\n")
	}
	for _, e := range missing {
		out.WriteString(e + "\n")
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
