package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/buildinfo"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/config"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/fsworkspace"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase"
)

func initCmd(g *globalOpts) *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create bmectl.yaml, .env.example and .gitignore entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			cfg := domain.DefaultConfig()
			if b := strings.TrimSpace(g.backend); b != "" {
				cfg, err = config.ApplyEnv(cfg, func(k string) (string, bool) {
					return b, k == "BMECTL_BACKEND_URL"
				})
				if err != nil {
					return err
				}
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, cfg, force); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Workspace ready at "+root)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing bmectl.yaml")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
