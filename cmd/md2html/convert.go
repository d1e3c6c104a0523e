package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/logging"
)

// ErrUsage marks invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// runConvertCmd parses convert flags and runs the conversion.
// -h/--help prints usage and succeeds.
func runConvertCmd(ctx context.Context, args []string, env *Environment, newPool poolFactory) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return runConvert(ctx, positional, flags, env, newPool)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, newPool poolFactory) error {
	if flags.common.quiet && flags.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	// Precedence: flags > env > config file > defaults
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, env.Config)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	timeout, err := resolveTimeout(flags.render.timeout, cfg)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromStrings(env.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	// Build one converter up front so option errors and skipped extensions
	// are reported once, not per worker.
	opts := converterOptions(cfg, timeout)
	if err := probeConverter(opts, env); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	output := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, output, cfg.Input.Include, cfg.Input.Exclude)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	if err := validateWorkers(workers); err != nil {
		return err
	}
	poolSize := min(md2html.ResolvePoolSize(workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := newPool(poolSize, opts...)
	defer pool.Close()

	results := convertBatch(ctx, pool, files, &conversionParams{pdf: cfg.Render.PDF, logger: logger})
	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

	return batchErr(results)
}

// loadConfig loads the named config, or copies base when no name is given.
// The flag name wins over the environment name.
func loadConfig(flagName, envName string, base *config.Config) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		if base == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *base
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.render.engine != "" {
		cfg.Render.Engine = flags.render.engine
	}
	if len(flags.render.extensions) > 0 {
		cfg.Extensions = enableExtensions(cfg.Extensions, flags.render.extensions)
	}
	if flags.render.safeSet {
		cfg.Render.SafeMode = flags.render.safe
	}
	if flags.render.pdfSet {
		cfg.Render.PDF = flags.render.pdf
	}

	if len(flags.filter.include) > 0 {
		cfg.Input.Include = flags.filter.include
	}
	if len(flags.filter.exclude) > 0 {
		cfg.Input.Exclude = flags.filter.exclude
	}

	// Explicit --log-level beats the -q/-v shortcuts
	switch {
	case flags.log.level != "":
		cfg.Log.Level = flags.log.level
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	case flags.common.quiet:
		cfg.Log.Level = "error"
	}
	if flags.log.format != "" {
		cfg.Log.Format = flags.log.format
	}
}

// resolveTimeout returns the PDF timeout: flag first, then config.
// Zero means the library default.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.TimeoutDuration(), nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q (use a positive duration like 30s or 2m)", md2html.ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveWorkers returns the flag value, else the environment value.
// Zero means auto.
func resolveWorkers(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	return envWorkers
}

// converterOptions maps the merged configuration to library options.
func converterOptions(cfg *config.Config, timeout time.Duration) []md2html.Option {
	opts := []md2html.Option{
		md2html.WithEngine(md2html.Engine(strings.ToLower(cfg.Render.Engine))),
		md2html.WithSafeMode(cfg.Render.SafeMode),
	}
	if timeout > 0 {
		opts = append(opts, md2html.WithTimeout(timeout))
	}
	if names := cfg.ExtensionNames(); len(names) > 0 {
		opts = append(opts, md2html.WithExtensions(names...))
	}
	for name, extCfg := range cfg.ExtensionConfigs() {
		opts = append(opts, md2html.WithExtensionConfig(name, extCfg))
	}
	return opts
}

// probeConverter builds and closes one converter to surface option errors
// and print extensions that failed to load.
func probeConverter(opts []md2html.Option, env *Environment) error {
	conv, err := md2html.NewConverter(opts...)
	if err != nil {
		return fmt.Errorf("creating converter: %w", err)
	}
	defer conv.Close()

	setup := conv.SetupDiagnostics()
	for _, d := range setup {
		fmt.Fprintf(env.Stderr, "warning: %s\n", d.Context)
	}
	if len(setup) > 0 {
		fmt.Fprintf(env.Stderr, "warning: %d extension(s) not loaded%s\n", len(setup), hints.ForExtensionNotFound(md2html.BuiltinExtensions()))
	}
	return nil
}

// resolveInputPath returns the positional input, else input.defaultDir.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	default:
		return "", ErrNoInput
	}
}

// resolveOutputDir returns the -o value, else output.defaultDir.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
