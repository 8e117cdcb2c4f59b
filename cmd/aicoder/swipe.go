package main

import (
	"fmt"
	"time"

	"aicoder/internal/swipe"

	"github.com/spf13/cobra"
)

func swipeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swipe",
		Short: "Inspect the swipe engine",
	}
	cmd.AddCommand(swipeSimulateCmd(opts))
	return cmd
}

func swipeSimulateCmd(opts *rootOptions) *cobra.Command {
	var (
		width    float64
		dxs      []float64
		velocity float64
		interval time.Duration
		terminal bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one gesture through the engine and print the outcome",
		Long: `Run one drag through the swipe engine with the configured policy.

Each --dx value is a cumulative displacement, sampled --interval apart. The
release uses --velocity when given, otherwise the velocity estimated from the
samples.`,
		Example: `  aicoder swipe simulate --width 400 --dx 40,120,260
  aicoder swipe simulate --width 400 --dx 60 --velocity 1500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(dxs) == 0 {
				return fmt.Errorf("at least one --dx is required")
			}

			var fired swipe.Action
			ctrl := swipe.NewController("simulated", opts.cfg.Policy(terminal), opts.cfg.Bindings(), func(a swipe.Action) {
				fired = a
			})
			ctrl.SetWidth(width)

			out := cmd.OutOrStdout()
			ctrl.Begin()
			elapsed := time.Duration(0)
			for _, dx := range dxs {
				elapsed += interval
				ctrl.Update(dx, elapsed)
				st := ctrl.State()
				fmt.Fprintf(out, "move   dx=%-8.1f progress=%.3f direction=%s\n", dx, st.Progress, st.Direction)
			}

			var decision swipe.Decision
			if cmd.Flags().Changed("velocity") {
				decision = ctrl.Release(velocity)
			} else {
				decision = ctrl.ReleaseTracked(elapsed)
			}

			action := fired.String()
			if action == "" {
				action = "none"
			}
			fmt.Fprintf(out, "decision: %s\n", decision)
			fmt.Fprintf(out, "action: %s\n", action)
			fmt.Fprintf(out, "state: %s\n", ctrl.State().Phase)
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 400, "row width")
	cmd.Flags().Float64SliceVar(&dxs, "dx", nil, "cumulative displacements, comma separated")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "release velocity in units per second (signed)")
	cmd.Flags().DurationVar(&interval, "interval", 16*time.Millisecond, "time between samples")
	cmd.Flags().BoolVar(&terminal, "terminal", false, "use the terminal fling velocity")
	return cmd
}
