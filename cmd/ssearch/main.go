// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/ssearch"
	"github.com/poiesic/ssearch/ai"
	"github.com/poiesic/ssearch/core"
	"github.com/poiesic/ssearch/report"
	"github.com/poiesic/ssearch/search"
	"github.com/urfave/cli/v2"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitConfig   = 2
	exitEmbedder = 3
)

// configError marks errors caused by bad arguments or configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// newEngine is swapped out in tests.
var newEngine = ssearch.NewEngine

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ssearch: loading .env: %v\n", err)
	}
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).RunContext(ctx, args)
	if err != nil {
		fmt.Fprintf(stderr, "ssearch: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var cfgErr *configError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &cfgErr), errors.Is(err, core.ErrInvalidConfig):
		return exitConfig
	case errors.Is(err, search.ErrEmbedderContract), errors.Is(err, search.ErrEmbedding):
		return exitEmbedder
	default:
		return exitFailure
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "ssearch",
		Usage:     "Find files whose names (and optionally contents) are semantically similar to a query",
		ArgsUsage: "search_dir query...",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     flags(),
		Before: func(c *cli.Context) error {
			if err := applyConfigFile(c); err != nil {
				return err
			}
			return setupLogger(c)
		},
		Action: searchAction,
		OnUsageError: func(c *cli.Context, err error, _ bool) error {
			return usageError(c, err)
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:    "threshold",
			Aliases: []string{"t"},
			Usage:   "Minimum similarity score for a file to be reported, between 0 and 1",
			Value:   core.DefaultThreshold,
			EnvVars: []string{"SSEARCH_THRESHOLD"},
		},
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Usage:   "Device hint for the embedding backend (cpu, cuda)",
			EnvVars: []string{"SSEARCH_DEVICE"},
		},
		&cli.BoolFlag{
			Name:    "content",
			Aliases: []string{"c"},
			Usage:   "Also match against the beginning of each file's content",
			EnvVars: []string{"SSEARCH_CONTENT"},
		},
		&cli.IntFlag{
			Name:    "max-content-size",
			Usage:   "Number of content bytes read per file when --content is set",
			Value:   core.DefaultMaxContentSize,
			EnvVars: []string{"SSEARCH_MAX_CONTENT_SIZE"},
		},
		&cli.IntFlag{
			Name:    "max-results",
			Aliases: []string{"m"},
			Usage:   "Maximum number of results to show",
			Value:   core.DefaultMaxResults,
			EnvVars: []string{"SSEARCH_MAX_RESULTS"},
		},
		&cli.BoolFlag{
			Name:    "recursive",
			Aliases: []string{"r"},
			Usage:   "Search subdirectories too",
			EnvVars: []string{"SSEARCH_RECURSIVE"},
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "Embedding backend (ollama, openai, hashing)",
			Value:   string(ai.BackendOllama),
			EnvVars: []string{"SSEARCH_BACKEND"},
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Embedding service host URL (default depends on backend)",
			EnvVars: []string{"SSEARCH_HOST"},
		},
		&cli.StringFlag{
			Name:    "model",
			Usage:   "Embedding model name (default depends on backend)",
			EnvVars: []string{"SSEARCH_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for OpenAI-compatible services",
			EnvVars: []string{"SSEARCH_API_KEY", "OPENAI_API_KEY"},
		},
		&cli.IntFlag{
			Name:    "dimensions",
			Usage:   "Vector length for the hashing backend",
			Value:   ai.DefaultDimensions,
			EnvVars: []string{"SSEARCH_DIMENSIONS"},
		},
		&cli.IntFlag{
			Name:    "max-retries",
			Usage:   "Attempts per embedding request; 1 disables retries, client errors are never retried",
			Value:   ai.DefaultMaxAttempts,
			EnvVars: []string{"SSEARCH_MAX_RETRIES"},
		},
		&cli.DurationFlag{
			Name:    "retry-delay",
			Usage:   "Base delay for exponential backoff",
			Value:   ai.DefaultRetryDelay,
			EnvVars: []string{"SSEARCH_RETRY_DELAY"},
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Parallel content readers (0 picks half the CPUs)",
			EnvVars: []string{"SSEARCH_WORKERS"},
		},
		&cli.BoolFlag{
			Name:    "progress",
			Usage:   "Show content read progress on stderr",
			EnvVars: []string{"SSEARCH_PROGRESS"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to a YAML config file",
			EnvVars: []string{"SSEARCH_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "Set logging level (debug, info, warn, error)",
			Value:   "warn",
			EnvVars: []string{"SSEARCH_LOG_LEVEL"},
		},
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return usageError(c, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr))
	}

	// Results go to stdout, so logs stay on stderr
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// usageError prints usage to stderr and marks err as a configuration error.
func usageError(c *cli.Context, err error) error {
	cli.HelpPrinter(c.App.ErrWriter, cli.AppHelpTemplate, c.App)
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &configError{err: err}
}

func searchConfigFromFlags(c *cli.Context) (core.SearchConfig, error) {
	device, err := core.ParseDevice(c.String("device"))
	if err != nil {
		return core.SearchConfig{}, err
	}

	args := c.Args()
	cfg := core.DefaultSearchConfig(args.First(), strings.Join(args.Tail(), " "))
	cfg.Threshold = c.Float64("threshold")
	cfg.Device = device
	cfg.Content = c.Bool("content")
	cfg.MaxContentSize = c.Int("max-content-size")
	cfg.MaxResults = c.Int("max-results")
	cfg.Recursive = c.Bool("recursive")

	return cfg, cfg.Validate()
}

func aiConfigFromFlags(c *cli.Context, device core.Device) (*ai.Config, error) {
	backend, err := ai.ParseBackend(strings.ToLower(c.String("backend")))
	if err != nil {
		return nil, err
	}

	cfg := ai.NewConfig(
		ai.WithBackend(backend),
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithDevice(device),
		ai.WithDimensions(c.Int("dimensions")),
		ai.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	return cfg, cfg.Validate()
}

func searchAction(c *cli.Context) error {
	cfg, err := searchConfigFromFlags(c)
	if err != nil {
		return usageError(c, err)
	}
	aiCfg, err := aiConfigFromFlags(c, cfg.Device)
	if err != nil {
		return usageError(c, err)
	}

	logger := slog.Default()
	opts := []search.Option{search.WithLogger(logger)}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, search.WithPoolSize(workers))
	}
	if c.Bool("progress") {
		opts = append(opts, search.WithProgress(c.App.ErrWriter))
	}

	// Configuration is already validated, so a failure here is a runtime one
	engine, err := newEngine(aiCfg, opts...)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	logger.Info("searching",
		"dir", cfg.SearchDir,
		"query", cfg.Query,
		"backend", aiCfg.Backend,
		"model", aiCfg.Model)

	result, err := engine.SearchWithMonitor(ctx, cfg, newLogMonitor(logger))
	if err != nil {
		return err
	}

	return report.Write(c.App.Writer, result, cfg.Threshold, cfg.MaxResults)
}
