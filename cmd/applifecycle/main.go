package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/applifecycle/internal/cliconfig"
	"github.com/bft-labs/applifecycle/pkg/log"
)

const longHelp = `
Replay UI lifecycle callbacks through an application lifecycle coordinator.

A script lists the per-screen callbacks a UI runtime would deliver. The
coordinator collapses them into one application lifecycle and prints the
notifications its listeners receive.

Configure via file ($HOME/.applifecycle/config.toml), APPLIFECYCLE_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  applifecycle replay handoff.toml
  applifecycle replay handoff.toml --watch --marker-dir /tmp/lifecycle
  applifecycle marker --marker-dir /tmp/lifecycle
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries configuration shared by every subcommand.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  log.Logger
}

// load applies config file, then env, then validates. Flags set on the
// command line win over both.
func (c *cli) load(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.logger = c.cfg.NewLogger()
	c.logger.Debug("configuration",
		log.String("marker_dir", c.cfg.MarkerDir),
		log.String("log_level", c.cfg.LogLevel),
		log.Bool("watch", c.cfg.Watch),
		log.Duration("debounce", c.cfg.Debounce),
	)
	return nil
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig()}
	boot := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "applifecycle",
		Short:         "Replay UI lifecycle callbacks through an application lifecycle coordinator",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.applifecycle/config.toml)")
	root.PersistentFlags().StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&c.cfg.LogFormat, "log-format", c.cfg.LogFormat, "log format: console or json")
	root.PersistentFlags().StringVar(&c.cfg.MarkerDir, "marker-dir", c.cfg.MarkerDir, "directory holding marker.json")

	root.AddCommand(newReplayCmd(c), newMarkerCmd(c))

	if err := root.Execute(); err != nil {
		boot.Error().Err(err).Msg("applifecycle")
		os.Exit(1)
	}
}
