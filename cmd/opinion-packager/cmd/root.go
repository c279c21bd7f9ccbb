package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/stuff-your-opinion/internal/archiver"
	"github.com/oshokin/stuff-your-opinion/internal/config"
	"github.com/oshokin/stuff-your-opinion/internal/logger"
	"github.com/oshokin/stuff-your-opinion/internal/service/packager"
	"github.com/oshokin/stuff-your-opinion/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// manifestPath overrides the manifest location.
	manifestPath string
	// archiverPath overrides the archiver executable.
	archiverPath string
	// logLevel overrides the configured log level.
	logLevel string
	// dryRun prints the archiver command without running it.
	dryRun bool

	// rootCmd represents the base command that builds the release archive.
	rootCmd = &cobra.Command{
		Use:   "opinion-packager",
		Short: "Bundle the extension into a version-named zip archive",
		Long: `Reads the version from manifest.json and runs 7-Zip to pack the extension
files into <product>-v<version>.zip in the current directory.

The archiver is taken from --archiver, the archiver_path setting or
OPINION_PACKAGER_ARCHIVER_PATH. Otherwise 7z, 7zz or 7za is looked up on PATH,
then in the platform's default install location.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options := &packager.Options{
				ConfigPath:   configPath,
				ManifestPath: manifestPath,
				ArchiverPath: archiverPath,
				LogLevel:     logLevel,
				DryRun:       dryRun,
			}

			return packager.Run(cmd.Context(), options)
		},
	}
)

// Execute runs the opinion-packager CLI and exits with the archiver's status on failure.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		logger.ErrorKV(ctx, "opinion-packager failed", "error", err)
		os.Exit(exitStatus(err))
	}
}

// exitStatus maps an error to the process exit code.
// The archiver's own status is kept; anything else is 1.
func exitStatus(err error) int {
	if code, ok := archiver.ExitCode(err); ok && code > 0 {
		return code
	}

	return 1
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "path to settings file (default "+config.DefaultConfigFilename+" if present)")
	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "path to manifest.json")
	rootCmd.Flags().StringVarP(&archiverPath, "archiver", "a", "", "path to the 7-Zip executable")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the archiver command without running it")

	rootCmd.AddCommand(initConfigCmd)
}
