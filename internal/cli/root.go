package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opentools-labs/opentools-launcher/internal/branding"
	"github.com/opentools-labs/opentools-launcher/internal/config"
	"github.com/opentools-labs/opentools-launcher/internal/launcher"
)

// exitCode carries the child's status from the run to Execute.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [args...]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves the host platform, locates the matching
precompiled ` + branding.CLIName() + ` binary, and runs it with the given arguments.
All arguments, flags included, belong to the toolset and are forwarded
unmodified.`,
	// The launcher interprets nothing: no flag parsing, any argv shape.
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		code, err := launcher.New().Run(cmd.Context(), args)
		if err != nil {
			return err
		}
		exitCode = code
		return nil
	},
}

// Execute runs the launcher and returns the process exit code: the child's
// own status, or 1 for launcher-level failures (unsupported platform,
// missing binary, spawn failure), reported on stderr.
func Execute() int {
	exitCode = 0

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", branding.CLIName(), err)
		return 1
	}
	return exitCode
}
