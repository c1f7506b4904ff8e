package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/trench/internal/ports/primary"
	"github.com/example/trench/internal/wire"
)

// RepoCmd returns the repo command
func RepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage registered repos",
		Long:  `Register and inspect the source repositories trench tracks worktrees for.`,
	}

	cmd.AddCommand(repoRegisterCmd())
	cmd.AddCommand(repoListCmd())
	cmd.AddCommand(repoShowCmd())

	return cmd
}

func repoRegisterCmd() *cobra.Command {
	var defaultBase string

	cmd := &cobra.Command{
		Use:   "register [name] [path]",
		Short: "Register a repo by path",
		Long: `Register a repo so trench can track worktrees under it.

Registering the same path twice is rejected, not merged; use 'repo show'
first if unsure.

Examples:
  trench repo register app /repos/app
  trench repo register api /repos/api --default-base develop`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			resp, err := wire.RepoService().RegisterRepo(ctx, primary.RegisterRepoRequest{
				Name:        args[0],
				Path:        args[1],
				DefaultBase: defaultBase,
			})
			if err != nil {
				return fmt.Errorf("failed to register repo: %w", err)
			}

			fmt.Printf("✓ Registered repo %s: %s\n", resp.RepoID, resp.Repo.Name)
			fmt.Printf("  Path: %s\n", resp.Repo.Path)
			if resp.Repo.DefaultBase != "" {
				fmt.Printf("  Default Base: %s\n", resp.Repo.DefaultBase)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&defaultBase, "default-base", "b", "", "Default base branch for new worktrees")

	return cmd
}

func repoListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered repos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			repos, err := wire.RepoService().ListRepos(ctx)
			if err != nil {
				return fmt.Errorf("failed to list repos: %w", err)
			}

			if len(repos) == 0 {
				fmt.Println("No repos registered.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPATH\tDEFAULT BASE\tCREATED")
			for _, r := range repos {
				base := r.DefaultBase
				if base == "" {
					base = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Path, base, r.CreatedAt)
			}
			return w.Flush()
		},
	}

	return cmd
}

func repoShowCmd() *cobra.Command {
	var byPath string

	cmd := &cobra.Command{
		Use:   "show [repo-id]",
		Short: "Show a repo by ID or path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			var (
				repo *primary.Repo
				err  error
			)
			switch {
			case byPath != "":
				repo, err = wire.RepoService().GetRepoByPath(ctx, byPath)
			case len(args) == 1:
				if err := validateEntityID(args[0], "repo"); err != nil {
					return err
				}
				repo, err = wire.RepoService().GetRepo(ctx, args[0])
			default:
				return fmt.Errorf("provide a repo ID or --path")
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s  %s\n", repo.ID, repo.Name)
			fmt.Printf("  Path: %s\n", repo.Path)
			if repo.DefaultBase != "" {
				fmt.Printf("  Default Base: %s\n", repo.DefaultBase)
			}
			fmt.Printf("  Created: %s\n", repo.CreatedAt)

			return nil
		},
	}

	cmd.Flags().StringVarP(&byPath, "path", "p", "", "Look up by filesystem path instead of ID")

	return cmd
}
