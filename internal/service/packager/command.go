package packager

import (
	"context"
	"fmt"

	"github.com/oshokin/stuff-your-opinion/internal/archiver"
	"github.com/oshokin/stuff-your-opinion/internal/config"
	"github.com/oshokin/stuff-your-opinion/internal/logger"
	"github.com/oshokin/stuff-your-opinion/internal/repository/manifest"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// ConfigPath is an optional path to the settings YAML file.
	ConfigPath string
	// ManifestPath overrides the configured manifest location when set.
	ManifestPath string
	// ArchiverPath overrides the configured archiver executable when set.
	ArchiverPath string
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// DryRun logs the archiver command instead of running it.
	DryRun bool
	// Runner executes the archiver; nil means a real child process.
	Runner archiver.Runner
}

// packager produces the release archive.
// Callers go through Run, which loads settings first.
type packager struct {
	// cfg holds the resolved settings.
	cfg *config.Config
	// manifests supplies the release version.
	manifests manifest.Repository
	// runner executes the archiver once it is located.
	runner archiver.Runner
	// dryRun skips the archiver invocation.
	dryRun bool
}

// Run executes the packaging workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "opinion-packager")

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	pkg := newPackager(cfg, manifest.NewFileRepository(cfg.ManifestPath), opts.Runner)
	pkg.dryRun = opts.DryRun

	return pkg.Run(ctx)
}

// loadConfig reads settings and applies command-line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.ManifestPath != "" {
		cfg.ManifestPath = opts.ManifestPath
	}

	if opts.ArchiverPath != "" {
		cfg.ArchiverPath = opts.ArchiverPath
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newPackager wires the packager from its collaborators.
func newPackager(cfg *config.Config, manifests manifest.Repository, runner archiver.Runner) *packager {
	return &packager{
		cfg:       cfg,
		manifests: manifests,
		runner:    runner,
	}
}

// Run reads the version, names the archive, then locates and invokes the archiver once.
// Manifest errors are reported before the archiver is looked up.
func (p *packager) Run(ctx context.Context) error {
	logger.InfoKV(ctx, "Reading release version", "manifest", p.cfg.ManifestPath)

	m, err := p.manifests.Load(ctx)
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	output := m.ArchiveName(p.cfg.ProductName)
	ctx = logger.WithKV(ctx, "version", m.Version, "archive", output)

	toolPath, err := archiver.Locate(p.cfg.ArchiverPath)
	if err != nil {
		return fmt.Errorf("locate archiver: %w", err)
	}

	logger.DebugKV(ctx, "Resolved archiver", "path", toolPath)

	tool := archiver.New(toolPath, archiver.WithRunner(p.runner))

	if p.dryRun {
		command := append([]string{tool.Path()}, archiver.Invocation(output, p.cfg.Files)...)
		logger.InfoKV(ctx, "Dry run, archiver not started", "command", command)

		return nil
	}

	logger.InfoKV(ctx, "Packaging release", "archiver", tool.Path(), "files", p.cfg.Files)

	if err = tool.Archive(ctx, output, p.cfg.Files); err != nil {
		return fmt.Errorf("archive %s: %w", output, err)
	}

	p.reportArchive(ctx, output)

	return nil
}

// reportArchive logs the size and checksum of the produced archive.
// The archiver already succeeded, so a failure here is only a warning.
func (p *packager) reportArchive(ctx context.Context, output string) {
	checksum, size, err := archiveChecksum(output)
	if err != nil {
		logger.WarnKV(ctx, "Release archive created, checksum unavailable", "error", err)
		return
	}

	logger.InfoKV(ctx, "Release archive created", "bytes", size, "sha512", checksum)
}
