// Package cli implements the ppmedit command-line interface.
//
// The root command transforms one image:
//
//	ppmedit {-I|-H|-G} infile outfile
//
// Subcommands cover header checks (check), the artifact cache (cache) and
// shell completion. All commands accept --verbose (-v) for debug logging;
// the logger travels on the command's context.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ppmedit/internal/config"
	"github.com/matzehuels/ppmedit/pkg/buildinfo"
	"github.com/matzehuels/ppmedit/pkg/cache"
	"github.com/matzehuels/ppmedit/pkg/errors"
	"github.com/matzehuels/ppmedit/pkg/observability"
	"github.com/matzehuels/ppmedit/pkg/pipeline"
	"github.com/matzehuels/ppmedit/pkg/ppm"
)

const appName = "ppmedit"

// UsageLine is printed with every usage error.
const UsageLine = "Usage: ppmedit {-I|-H|-G} infile outfile"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Exit statuses.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitCanceled = 130
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Config is loaded before any command runs.
	Config config.Config

	verbose    bool
	noCache    bool
	refresh    bool
	assumeYes  bool
	configPath string

	isTerminal func() bool
}

// New creates a CLI that logs to w at level and talks to the process's
// standard streams.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    w,
		Config: config.Default(),
	}
	c.isTerminal = func() bool { return stdinIsTerminal(c.In) }
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var invert, contrast, grey bool

	root := &cobra.Command{
		Use:   "ppmedit {-I|-H|-G} infile outfile",
		Short: "Apply a color transform to a plain PPM (P3) image",
		Long: `ppmedit reads an ASCII PPM ("P3") image, applies one transform and writes
the result as canonical P3 text.

  -I  invert every channel (v -> 255-v)
  -H  high contrast: each channel becomes 0 or 255
  -G  greyscale: each pixel becomes the average of its channels`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              usageArgs(cobra.ExactArgs(2)),
		ValidArgsFunction: completePPMFiles(2),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := selectedKind(invert, contrast, grey)
			return c.runEdit(cmd.Context(), kind, args[0], args[1])
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.Flags()
	flags.BoolVarP(&invert, "invert", "I", false, "invert every channel")
	flags.BoolVarP(&contrast, "high-contrast", "H", false, "snap every channel to 0 or 255")
	flags.BoolVarP(&grey, "greyscale", "G", false, "convert to greyscale")
	root.MarkFlagsOneRequired("invert", "high-contrast", "greyscale")
	root.MarkFlagsMutuallyExclusive("invert", "high-contrast", "greyscale")
	flags.BoolVarP(&c.assumeYes, "yes", "y", false, "overwrite an existing output without asking")
	flags.BoolVar(&c.refresh, "refresh", false, "ignore cached output and recompute")

	persistent := root.PersistentFlags()
	persistent.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	persistent.BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")
	persistent.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ppmedit/config.toml)")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the command tree with args and normalizes errors: anything
// cobra reports on its own becomes an INVALID_FLAG usage error.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetIn(c.In)
	root.SetOut(c.Out)
	root.SetErr(c.Err)

	err := root.ExecuteContext(ctx)
	if err == nil || stderrors.Is(err, context.Canceled) || errors.GetCode(err) != "" {
		return err
	}
	return usageError(err)
}

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitCanceled
	default:
		return ExitFailure
	}
}

// setup loads the config file, merges it under the flags and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	c.verbose = c.verbose || cfg.Verbose
	c.assumeYes = c.assumeYes || cfg.AssumeYes
	c.noCache = c.noCache || !cfg.Cache.Enabled

	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	observability.SetCacheHooks(cacheLogHooks{logger: c.Logger})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) *pipeline.Runner {
	r := pipeline.NewRunner(c.newCache(ctx), cache.NewScopedKeyer(nil, appName+":"), c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r
}

// newCache opens the configured backend. Backend failures degrade to no
// caching with a warning; they never fail a transform.
func (c *CLI) newCache(ctx context.Context) cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	cc, err := c.openCache(ctx)
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", c.Config.Cache.Backend, "error", err)
		return cache.NewNullCache()
	}
	return cc
}

// openCache opens the configured backend or returns the error.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.Cache
	if cfg.Backend == config.BackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

func selectedKind(invert, contrast, grey bool) ppm.Kind {
	switch {
	case invert:
		return ppm.KindInvert
	case contrast:
		return ppm.KindHighContrast
	case grey:
		return ppm.KindGreyScale
	}
	return 0
}

// usageArgs wraps a positional-args validator so failures carry the usage line.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func usageError(err error) error {
	return errors.Wrap(errors.ErrCodeInvalidFlag, err, "%s\n%s", err.Error(), UsageLine)
}
