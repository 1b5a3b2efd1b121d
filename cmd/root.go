// Package cmd implements the vcrx command line interface: thin glue around
// the preview engine for listing keys, previewing values, and dumping whole
// cassettes.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/vcrx/internal/config"
	"github.com/oakwood-commons/vcrx/pkg/logger"
	"github.com/oakwood-commons/vcrx/pkg/preview"
	"github.com/oakwood-commons/vcrx/pkg/settings"
)

// defaultConfigFile is picked up from the working directory when --config is
// not given. Hierarchical parent-directory discovery is deliberately not
// implemented; the engine consumes one already-merged config.
const defaultConfigFile = ".vcr-tui.toml"

var (
	cfgPath  string
	channel  string
	logLevel int8
	quiet    bool
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Inspect recorded-interaction (VCR cassette) YAML/JSON files",
	Long: settings.CliBinaryName + ` discovers the addressable values inside cassette files and
renders them through configurable extraction rules: response bodies as
decoded text or pretty JSON, whole documents as YAML, and so on.`,
	Version:       settings.VersionInformation.BuildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to a TOML config file (default: ./"+defaultConfigFile+" if present)")
	pf.StringVarP(&channel, "channel", "c", "", "channel to apply (default: config default_channel)")
	pf.Int8Var(&logLevel, "log-level", 0, "minimum zap log level (negative enables verbose output)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress diagnostic logging")

	rootCmd.AddCommand(keysCmd, previewCmd, catCmd, channelsCmd, discoverCmd)
}

// cliLogger returns the logger the subcommands share.
func cliLogger() logr.Logger {
	if quiet {
		return *logger.GetNoopLogger()
	}
	return *logger.Get(logLevel)
}

// loadConfig resolves the channel configuration for this invocation:
// --config if given, else the working directory's config file, else the
// built-in defaults.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		} else {
			return config.Default(), nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := config.ParseTOML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// newEngine builds the preview engine for this invocation.
func newEngine() (*preview.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return preview.New(preview.WithConfig(cfg), preview.WithLogger(cliLogger())), nil
}

// exitMessage turns the expected "no answer" conditions into plain messages
// instead of raw wrapped error chains.
func exitMessage(err error) error {
	switch {
	case errors.Is(err, preview.ErrPathNotFound):
		return errors.New("path not found in document")
	case errors.Is(err, preview.ErrNoMatchingRule):
		return errors.New("no extraction rule matches that path in the selected channel")
	case errors.Is(err, preview.ErrChannelNotFound):
		return fmt.Errorf("unknown or disabled channel %q", channel)
	default:
		return err
	}
}
