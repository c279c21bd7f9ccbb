package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/stuff-your-opinion/internal/config"
)

var (
	// force allows init-config to replace an existing settings file.
	force bool

	// errSettingsExist is returned when init-config would overwrite a file.
	errSettingsExist = errors.New("settings file already exists, use --force to replace it")

	// initConfigCmd writes the built-in settings to disk.
	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultConfigFilename
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s: %w", path, errSettingsExist)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", path)

			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initConfigCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")
}
