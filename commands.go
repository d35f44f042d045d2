package main

import (
	"fmt"
	"strings"

	"sparkcalc/app"
	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/services/settings"

	"github.com/spf13/cobra"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the calculator in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alt screen owns stdout; logs go to stderr.
			return app.RunTUI(cmd.Context(), opts.appConfig(), hal.WriterLogger(cmd.ErrOrStderr()))
		},
	}
}

func newHeadlessCmd(opts *rootOptions) *cobra.Command {
	var (
		script string
		cfg    hal.HeadlessConfig
	)
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the keypad without a window and print the final entry",
		Long: `Runs the framebuffer keypad with no window, feeding it a key script one
key per tick. Named keys go in braces: {enter} {esc} {bs} {tab} {f1}..{f4}
{up} {down} {left} {right} {home}.

Example:
  sparkcalc headless --script '2+3{enter}*4='`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			evs, err := hal.ParseScript(script)
			if err != nil {
				return err
			}
			cfg.Script = evs
			cfg.Host.Log = cmd.ErrOrStderr()
			if len(evs) == 0 && cfg.Ticks == 0 {
				return fmt.Errorf("headless: need --script or --ticks")
			}

			text, err := app.RunHeadless(cmd.Context(), opts.appConfig(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "keys to type")
	cmd.Flags().IntVar(&cfg.Hz, "hz", 60, "tick rate")
	cmd.Flags().Uint64Var(&cfg.Ticks, "ticks", 0, "stop after N ticks (0 = when the script is done)")
	return cmd
}

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var angle string
	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate an expression and print the display result",
		Long: `Evaluates an expression the way the "=" key does and prints the
display text. Accepts the glyphs × ÷ − π, ^ for powers, named functions, and
an implicit coefficient before "(" or a name, as in 5(2) or 2pi.`,
		Example: `  sparkcalc eval '2*(3+4)'
  sparkcalc eval --angle rad 'sin(pi/2)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit := calc.Degrees
			if angle != "" {
				u, err := calc.ParseAngleUnit(angle)
				if err != nil {
					return err
				}
				unit = u
			} else if p := opts.settingsPath(); p != "" {
				s, err := settings.Load(p)
				if err != nil {
					return err
				}
				unit = s.Angle()
			}

			text, err := app.Eval(strings.Join(args, " "), unit)
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&angle, "angle", "", "deg or rad (default: from settings)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sparkcalc "+buildinfo.String())
		},
	}
}
