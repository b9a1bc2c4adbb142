package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/griddy/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "griddy: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "griddy",
		Short: "Animated grid of search queries typed out in the terminal",
		Long: `griddy fills the terminal with colored cells that type out search queries
read from a Google Sheets spreadsheet. Without credentials it runs on a
static query list.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Flags = cmd.Flags()
			return app.Run(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/griddy/config.toml)")
	pf.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/griddy/prefs.toml)")
	pf.String("api-key", "", "Google Sheets API key")
	pf.String("log-file", "", `log file path, or "off"`)
	pf.String("log-level", "", "log level (debug, info, warn, error)")

	f := root.Flags()
	f.StringVar(&opts.DocumentID, "doc", "", "spreadsheet document ID for this run")
	f.Uint64Var(&opts.Seed, "seed", 0, "random seed for colors and transitions (0 = random)")
	f.BoolVar(&opts.Static, "static", false, "never contact the spreadsheet API")
	f.Duration("poll", 0, "spreadsheet refresh interval (default 5m)")
	f.String("queries", "", "static query list used without a spreadsheet (.txt or .yaml)")

	root.AddCommand(newQueriesCmd(&opts))
	return root
}

func newQueriesCmd(rootOpts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "queries [document-id]",
		Short: "Print the distinct queries of a spreadsheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.QueriesOptions{
				ConfigPath: rootOpts.ConfigPath,
				PrefsPath:  rootOpts.PrefsPath,
				Flags:      cmd.Flags(),
			}
			if len(args) == 1 {
				opts.DocumentID = args[0]
			}
			return app.PrintQueries(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
}
