package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/trench/internal/config"
	"github.com/example/trench/internal/db"
	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var name, defaultBase string

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize trench for a repo",
		Long: `Create the state database if needed, register the repo at the given
path (default: current directory), and write .trench/config.json there.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			path, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}

			if name == "" {
				name = baseName(path)
			}

			resp, err := wire.RepoService().RegisterRepo(ctx, primary.RegisterRepoRequest{
				Name:        name,
				Path:        path,
				DefaultBase: defaultBase,
			})
			if err != nil {
				return fmt.Errorf("failed to register repo: %w", err)
			}

			cfg := &config.Config{
				Version:     "1",
				RepoID:      resp.RepoID,
				DefaultBase: defaultBase,
			}
			if err := config.SaveConfig(path, cfg); err != nil {
				return err
			}

			dbPath, err := db.GetDBPath()
			if err != nil {
				return err
			}

			fmt.Printf("✓ Initialized trench for %s (%s)\n", resp.Repo.Name, resp.RepoID)
			fmt.Printf("  State: %s\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Repo name (default: directory name)")
	cmd.Flags().StringVarP(&defaultBase, "default-base", "b", "", "Default base branch for new worktrees")

	return cmd
}

func baseName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return "repo"
	}
	return name
}
