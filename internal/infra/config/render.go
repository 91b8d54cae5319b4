package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

// Render produces a bmectl.yaml document for cfg.
func Render(cfg domain.Config) ([]byte, error) {
	var y YAMLConfig
	b := &y.Bmectl

	b.API.BackendURL = cfg.API.BackendURL
	b.API.Timeout = cfg.API.Timeout.String()
	size := cfg.API.PageSize
	b.API.PageSize = &size
	b.Output.Format = cfg.Output.Format
	b.Session.File = cfg.Session.File
	masking := cfg.Masking.Enabled
	b.Masking.Enabled = &masking
	debug := cfg.LogDebug
	b.Log.Debug = &debug

	var buf bytes.Buffer
	buf.WriteString("# bmectl configuration. BACKEND_URL / BMECTL_* environment variables override these values.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return nil, &domain.OpError{
			Op:   "config.render",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
