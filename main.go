package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"sparkcalc/app"
	"sparkcalc/hal"
	"sparkcalc/sparkos/services/settings"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
	jsonLogs   bool
	expr       string
}

func (o *rootOptions) appConfig() app.Config {
	return app.Config{
		SettingsPath: o.settingsPath(),
		Verbose:      o.verbose,
		JSONLogs:     o.jsonLogs,
		Expr:         o.expr,
	}
}

// settingsPath falls back to an in-memory store when no config directory
// can be found.
func (o *rootOptions) settingsPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	p, err := settings.DefaultPath()
	if err != nil {
		return ""
	}
	return p
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var host hal.HostConfig

	root := &cobra.Command{
		Use:   "sparkcalc",
		Short: "SparkCalc - a keypad calculator",
		Long: `SparkCalc is a pocket-calculator style expression evaluator.

Run without arguments to open the keypad window. The same calculator is
available in the terminal (tui), without any display (headless), or as a
one-shot evaluator (eval).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			host.Log = cmd.ErrOrStderr()
			return app.RunWindow(cmd.Context(), opts.appConfig(), host)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings file (default: user config dir/sparkcalc/settings.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "log as JSON lines")
	root.PersistentFlags().StringVar(&opts.expr, "expr", "", "pre-fill the entry with an expression")

	root.Flags().IntVar(&host.Width, "width", hal.DefaultWidth, "framebuffer width in pixels")
	root.Flags().IntVar(&host.Height, "height", hal.DefaultHeight, "framebuffer height in pixels")
	root.Flags().IntVar(&host.Scale, "scale", hal.DefaultScale, "window zoom factor")

	root.AddCommand(
		newTUICmd(opts),
		newHeadlessCmd(opts),
		newEvalCmd(opts),
		newVersionCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
