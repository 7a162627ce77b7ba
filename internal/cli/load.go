package cli

import (
	"github.com/spf13/cobra"

	"github.com/tmulin/wire/internal/infra/logger"
)

func loadCmd() *cobra.Command {
	var workspace string
	var profile string
	var format string

	c := &cobra.Command{
		Use:   "load [roots...]",
		Short: "Load and parse every profile file that applies to the schema",
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

			pl, schema, err := ws.profileLoader(cmd.Context(), name, logger.L())
			if err != nil {
				return err
			}

			p, err := pl.Load(cmd.Context())
			if err != nil {
				return err
			}

			return printProfile(cmd.OutOrStdout(), name, len(schema.Files), p, format)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Profile name (defaults to the workspace profile)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
