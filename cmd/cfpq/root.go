package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cfpq/config"
)

// app carries state shared by subcommands once the root has loaded the
// configuration.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
}

// defaultConfigPath is ~/.cfpq/config.yaml, or a relative fallback when the
// home directory is unknown.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cfpq", "config.yaml")
	}

	return filepath.Join(home, ".cfpq", "config.yaml")
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cfpq",
		Short:         "Context-free path query tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"configuration file (default "+defaultConfigPath()+" if present)")

	root.AddCommand(newConfigCmd(a), newCacheCmd(a))

	return root
}

// load resolves the configuration: an explicit --config must exist, the
// default path is optional and falls back to config.Default.
func (a *app) load(cmd *cobra.Command) error {
	path := a.configPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	default:
		return err
	}

	a.cfg = cfg
	a.logger = cfg.Logger(cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded", slog.String("path", path), slog.Bool("explicit", explicit))

	return nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
