package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/apiclient"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/config"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/httpclient"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/logger"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/sessionstore"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/workspacefinder"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase"
)

type appCtx struct {
	root string
	cfg  domain.Config
	log  *slog.Logger

	catalog  *domain.Catalog
	sessions *sessionstore.JSONStore

	views *usecase.LoadView
	forms *usecase.SubmitForm
	auth  *usecase.Auth

	cleanup func() error
}

func (a *appCtx) close() {
	if a.cleanup != nil {
		_ = a.cleanup()
	}
}

// format returns the effective output format: flag first, then config.
func (a *appCtx) format(g *globalOpts) string {
	if f := strings.TrimSpace(g.output); f != "" {
		return strings.ToLower(f)
	}
	return a.cfg.Output.Format
}

// loadApp wires config, logging, session storage and the API client.
// A missing workspace is fine: defaults and the environment still apply.
func loadApp(g *globalOpts) (*appCtx, error) {
	root, err := resolveWorkspaceRoot(g.workspace)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewLoader().Load(root)
	if err != nil {
		return nil, err
	}
	if b := strings.TrimSpace(g.backend); b != "" {
		cfg, err = config.ApplyEnv(cfg, func(k string) (string, bool) {
			if k == "BMECTL_BACKEND_URL" {
				return b, true
			}
			return "", false
		})
		if err != nil {
			return nil, err
		}
	}

	cleanup, _ := logger.Setup(logger.Config{
		Root:  root,
		Debug: g.debug || cfg.LogDebug,
	})
	log := logger.L()

	path, err := sessionstore.PathFor(root, cfg)
	if err != nil {
		if cleanup != nil {
			_ = cleanup()
		}
		return nil, err
	}
	sessions := sessionstore.NewJSONStore(path)

	httpCfg := httpclient.ConfigFor(cfg.API)
	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(httpCfg)),
		httpclient.WithTimeout(httpCfg.Timeout),
	)
	api := apiclient.New(cfg.APIBase(), sessions,
		apiclient.WithExecutor(exec),
		apiclient.WithLogger(log),
	)

	log.Debug("app.ready",
		"workspace", root,
		"api_base", cfg.APIBase(),
		"session_file", path,
	)

	return &appCtx{
		root:     root,
		cfg:      cfg,
		log:      log,
		catalog:  domain.DefaultCatalog(),
		sessions: sessions,
		views:    usecase.NewLoadView(api),
		forms:    usecase.NewSubmitForm(api),
		auth:     usecase.NewAuth(api, sessions),
		cleanup:  cleanup,
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return workspacefinder.NewFinder().FindOrEmpty(wd)
}
