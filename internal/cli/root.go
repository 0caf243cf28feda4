package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the cadkit CLI with ctx, which main cancels on SIGINT and
// SIGTERM.
//
// Logging is at info level on stderr, debug with --verbose. The logger and
// the configuration read from --config (default cadkit.toml, optional) are
// attached to the command context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// globalFlags holds the persistent flags shared by all commands.
type globalFlags struct {
	verbose    bool
	configPath string
	tol        float64
	layer      string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:          "cadkit",
		Short:        "cadkit transforms, tessellates and inspects DXF-style drawings",
		Long:         `cadkit loads drawings from DXF files or Lisp drawing scripts and maps them through coordinate transforms, block explosion and tessellation.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if flags.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)

			cfg, err := loadConfig(flags.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tol") {
				cfg.Tolerance.Length = flags.tol
			}
			if cmd.Flags().Changed("layer") {
				cfg.Output.Layer = flags.layer
			}
			logger.Debug("configuration", "length_tol", cfg.Tolerance.Length, "normalized_tol", cfg.Tolerance.Normalized, "layer", cfg.Output.Layer)

			ctx := withConfig(withLogger(cmd.Context(), logger), cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("cadkit %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flags.configPath, "config", defaultConfigPath, "config file")
	root.PersistentFlags().Float64Var(&flags.tol, "tol", 0, "length tolerance (overrides config)")
	root.PersistentFlags().StringVar(&flags.layer, "layer", "", "output layer for written entities (overrides config)")

	root.AddCommand(newTransformCmd())
	root.AddCommand(newExplodeCmd())
	root.AddCommand(newMeshCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newUnitsCmd())

	return root
}
