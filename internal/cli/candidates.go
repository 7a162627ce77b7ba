package cli

import (
	"github.com/spf13/cobra"

	"github.com/tmulin/wire/internal/infra/logger"
)

func candidatesCmd() *cobra.Command {
	var workspace string
	var profile string
	var format string

	c := &cobra.Command{
		Use:   "candidates [roots...]",
		Short: "List every path a profile file could be loaded from (no reads)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace, args)
			if err != nil {
				return err
			}
			defer startLogging(cmd, ws)()

			name, err := resolveProfile(ws, profile)
			if err != nil {
				return err
			}

			pl, _, err := ws.profileLoader(cmd.Context(), name, logger.L())
			if err != nil {
				return err
			}

			return printCandidates(cmd.OutOrStdout(), name, pl.Candidates(), format)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Profile name (defaults to the workspace profile)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
