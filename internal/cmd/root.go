// Package cmd wires the swimlog command tree: the terminal UI, the RPC
// server and the one-shot practice commands.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sadopc/swimlog/internal/tui"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	dbPath     string
	logLevel   string
	logFile    string
}

// NewRootCommand creates and returns the root cobra command for swimlog
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "swimlog",
		Short: "Log swimming practices and review statistics",
		Long: `swimlog records swimming practices (date, duration, distance, main
stroke and notes) and summarises them by stroke.

Run without arguments in a terminal to open the interactive UI. Use
"swimlog serve" to expose the practice procedures over HTTP.`,
		Version:      Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return runList(cmd, opts, listFlags{limit: recentLimit})
			}
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/swimlog/config.yaml)")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides storage.path)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file instead of stderr")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newExportCommand(opts))

	return cmd
}

func runTUI(cmd *cobra.Command, opts *options) error {
	env, err := openEnv(cmd, opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.store == nil {
		return fmt.Errorf("the terminal UI needs the %q storage driver", "sqlite")
	}

	p := tea.NewProgram(tui.NewApp(env.svc, env.store), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
