package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/ui/tui"
)

// globalOpts holds the persistent flags shared by every subcommand.
type globalOpts struct {
	debug     bool
	workspace string
	backend   string
	output    string
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	cmd := &cobra.Command{
		Use:           "bmectl",
		Short:         "bmectl, console for the Big Mann Entertainment API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.close()

			return tui.Run(tui.Deps{
				Catalog:  app.catalog,
				Views:    app.views,
				Forms:    app.forms,
				Auth:     app.auth,
				PageSize: app.cfg.API.PageSize,
				Logger:   app.log,
				Debug:    g.debug,
			})
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&g.debug, "debug", false, "enable verbose logging to .bmectl/logs/bmectl.log")
	pf.StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	pf.StringVar(&g.backend, "backend", "", "Backend origin, overrides BACKEND_URL and bmectl.yaml")
	pf.StringVarP(&g.output, "output", "o", "", "Output format: table|json (default from config)")

	cmd.AddCommand(
		initCmd(g),
		loginCmd(g),
		registerCmd(g),
		logoutCmd(g),
		whoamiCmd(g),
		refreshCmd(g),
		resourcesCmd(g),
		listCmd(g),
		showCmd(g),
		createCmd(g),
		updateCmd(g),
		deleteCmd(g),
		versionCmd(),
	)
	return cmd
}

func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgHiRed, color.Bold).Fprintln(w, "Error: "+errorText(err))
}

// errorText shows backend and validation problems the way the views do,
// and everything else with its full chain so local mistakes stay debuggable.
func errorText(err error) string {
	var (
		ae *domain.APIError
		ve *domain.ValidationError
		te *domain.TransportError
	)
	switch {
	case errors.As(err, &ve):
		if len(ve.Fields) <= 1 {
			return domain.Message(err)
		}
		return fmt.Sprintf("%s (and %d more)", domain.Message(err), len(ve.Fields)-1)
	case errors.As(err, &ae), errors.As(err, &te), errors.Is(err, domain.ErrUnauthorized):
		return domain.Message(err)
	default:
		return err.Error()
	}
}
