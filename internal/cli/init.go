package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tmulin/wire/internal/infra/fsworkspace"
	"github.com/tmulin/wire/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var profile string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a wire.yaml workspace config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, profile, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized wire workspace in %s\n", root)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Profile name written to wire.yaml (default android)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing wire.yaml")
	return c
}
