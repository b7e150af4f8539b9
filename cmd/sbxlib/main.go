// Command sbxlib locates the serialbox engine library and reports what it found.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cosunae/serialbox2/application/config"
	"github.com/cosunae/serialbox2/application/schema"
	"github.com/cosunae/serialbox2/binding"
	"github.com/cosunae/serialbox2/binding/registry"
	"github.com/cosunae/serialbox2/domain/entities"
	domainerrors "github.com/cosunae/serialbox2/domain/errors"
	"github.com/cosunae/serialbox2/log"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// options are the command line flags shared by all commands.
type options struct {
	configFile string
	envFile    string
	jsonLogs   bool
	library    string
	backend    string
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: sbxlib [flags] <command>\n")
		fmt.Fprintf(out, "\nCommands:\n")
		fmt.Fprintf(out, "  resolve   Locate, load and register the library, print its path\n")
		fmt.Fprintf(out, "  info      Print the library meta-information as JSON\n")
		fmt.Fprintf(out, "  schema    Print the JSON schema of the configuration file\n")
		fmt.Fprintf(out, "\nFlags:\n")
		fs.PrintDefaults()
	}
}

// run executes one command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("sbxlib", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "Path to a YAML configuration file")
	fs.StringVar(&opts.envFile, "env", ".env", "Path to a .env file, read when it exists")
	fs.BoolVar(&opts.jsonLogs, "json", false, "Log as JSON")
	fs.StringVar(&opts.library, "library", "", "Explicit library file, skips the search")
	fs.StringVar(&opts.backend, "backend", "", "Backend: auto, native or wasm")
	fs.Usage = usage(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if fs.Arg(0) == "schema" {
		out, err := schema.ConfigSchema()
		if err != nil {
			fmt.Fprintf(stderr, "schema generation failed: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(out))
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 1
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := log.New(log.WithLevel(level), log.WithJSON(opts.jsonLogs), log.WithWriter(stderr))
	ctx = log.WithLogger(ctx, logger)

	switch cmd := fs.Arg(0); cmd {
	case "resolve":
		err = resolveCommand(ctx, cfg, stdout)
	case "info":
		err = infoCommand(ctx, cfg, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", cmd)
		fs.Usage()
		return 2
	}
	if err != nil {
		logger.Error("command failed", "command", fs.Arg(0), "error", err, "detail", domainerrors.ToErrorDetail(err))
		return 1
	}
	return 0
}

func loadConfig(opts options) (entities.ResolverConfig, error) {
	var loadOpts []config.LoadOption
	if opts.configFile != "" {
		loadOpts = append(loadOpts, config.WithFile(opts.configFile))
	}
	if opts.envFile != "" {
		if info, err := os.Stat(opts.envFile); err == nil && info.Mode().IsRegular() {
			loadOpts = append(loadOpts, config.WithDotEnv(opts.envFile))
		}
	}

	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return cfg, err
	}
	if opts.library != "" {
		cfg.LibraryPath = opts.library
	}
	if opts.backend != "" {
		cfg.Backend = entities.Backend(opts.backend)
	}
	return cfg, config.NewValidator().Validate(&cfg)
}

func resolverOptions(ctx context.Context, cfg entities.ResolverConfig) []binding.Option {
	return []binding.Option{binding.WithConfig(cfg), binding.WithLogger(log.FromContext(ctx))}
}

func resolveCommand(ctx context.Context, cfg entities.ResolverConfig, stdout io.Writer) error {
	logger := log.FromContext(ctx)
	reg := registry.NewRegistry(registry.WithStrictMode(cfg.StrictRegistry), registry.WithLogger(logger))
	defer func() {
		if err := reg.Close(); err != nil {
			logger.Warn("failed to unload libraries", "error", err)
		}
	}()

	h, err := binding.ResolveAndRegister(ctx, reg, resolverOptions(ctx, cfg)...)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, h.Path())
	return nil
}

func infoCommand(ctx context.Context, cfg entities.ResolverConfig, stdout io.Writer) error {
	h, err := binding.NewResolver(resolverOptions(ctx, cfg)...).Resolve(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	out, err := json.MarshalIndent(h.MetaInfo(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode meta-information: %w", err)
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}
