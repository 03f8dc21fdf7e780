package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize journal storage",
		Long: "Create the configuration directory with a default config.yaml, then\n" +
			"create the data directory with an empty file per category. Existing\n" +
			"files are never overwritten, so init is safe to run repeatedly.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wrote, err := writeConfigIfMissing(a.configDir, a.dataDir)
			if err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}
			if wrote {
				a.logger.Info("wrote default config", "dir", a.configDir)
			}

			if _, err := a.openRegistry(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Journal initialized successfully")
			fmt.Fprintln(out, "  config:", a.configDir)
			fmt.Fprintln(out, "  data:  ", a.dataDir)
			return nil
		},
	}
}
