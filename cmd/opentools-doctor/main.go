// Command opentools-doctor diagnoses an opentools installation without
// launching anything: which platform the launcher would resolve, where it
// would look for the toolset binary, and whether the shipped bundle is
// healthy. It lives in a separate binary because the launcher itself
// forwards every argument to the toolset and cannot own subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opentools-labs/opentools-launcher/internal/branding"
	"github.com/opentools-labs/opentools-launcher/internal/config"
	"github.com/opentools-labs/opentools-launcher/internal/doctor"
	"github.com/opentools-labs/opentools-launcher/internal/launcher"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          branding.CLIName() + "-doctor",
		Short:        "Diagnose the " + branding.DisplayName() + " launcher environment",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			config.Load()
		},
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newPlatformCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report platform resolution, artifact locations, and bundle health",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			doctor.Report(cmd.OutOrStdout(), launcher.New(), version)
		},
	}
}

func newPlatformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the resolved platform identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := launcher.New()
			id, ok := l.Detector.Resolve()
			if !ok {
				return &launcher.UnsupportedError{OS: l.Detector.OS, Machine: l.Detector.Machine}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(id))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s-doctor version %s (commit: %s, built: %s)\n",
				branding.CLIName(), version, commit, date)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	return cmd
}
