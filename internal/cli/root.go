// Package cli provides the command line entry points of image-viewer.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Akaiko1/image-viewer/internal/config"
	"github.com/Akaiko1/image-viewer/internal/detect"
	"github.com/Akaiko1/image-viewer/internal/logging"
	"github.com/Akaiko1/image-viewer/internal/rootpath"
	"github.com/Akaiko1/image-viewer/internal/ui"
)

// Version is overridden at build time.
var Version = "v0.3.0-dev"

// globals holds the persistent flags shared by every command.
type globals struct {
	cfgFile string
	root    string
	debug   bool

	cfg      *config.Config
	logger   *logging.Logger
	detector detect.Detector
}

// Option customises the root command.
type Option func(*globals)

// WithDetector plugs an object detector into the viewer window. Without it
// the Detect button stays disabled.
func WithDetector(d detect.Detector) Option {
	return func(g *globals) {
		if d != nil {
			g.detector = d
		}
	}
}

func newGlobals(opts ...Option) *globals {
	g := &globals{detector: detect.Unavailable{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// viewer window.
func NewRootCmd(opts ...Option) *cobra.Command {
	g := newGlobals(opts...)

	rootCmd := &cobra.Command{
		Use:   "image-viewer",
		Short: "Browse and inspect the images folder",
		Long: `Image Viewer shows a file browser confined to an images directory,
a preview of the selected image and its statistics.

The images directory is taken from --root, or discovered next to the
executable, its parent or the working directory.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := g.resolve()
			ui.NewViewerApp(g.cfg, ui.Options{
				Root:     res,
				RootErr:  err,
				Detector: g.detector,
				Logger:   g.logger,
			}).Run()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&g.root, "root", "r", "", "Images directory (overrides discovery and config)")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug output")

	rootCmd.AddCommand(newResolveCmd(g))
	rootCmd.AddCommand(newTreeCmd(g))
	rootCmd.AddCommand(newClassifyCmd(g))
	return rootCmd
}

// init loads configuration and builds the logger.
func (g *globals) init(cmd *cobra.Command) error {
	path := g.cfgFile
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if g.root != "" {
		cfg.Root = g.root
	}
	g.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if g.debug {
		level = zerolog.DebugLevel
	}
	g.logger = logging.New(level, cmd.ErrOrStderr())
	g.logger.Debug().Str("config", path).Str("root", cfg.Root).Msg("configuration loaded")
	return nil
}

func (g *globals) resolve() (rootpath.Resolution, error) {
	return rootpath.DiscoverFromEnvironment(g.cfg.Root)
}

// Execute runs the root command and exits non-zero on failure.
func Execute(opts ...Option) {
	if err := NewRootCmd(opts...).Execute(); err != nil {
		logging.New(zerolog.InfoLevel, os.Stderr).Error().Err(err).Msg("image-viewer failed")
		os.Exit(1)
	}
}
