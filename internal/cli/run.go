package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/turnstile/internal/harness"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
}

// ScenarioReport is one scenario's outcome in the run command's output.
type ScenarioReport struct {
	Scenario     string   `json:"scenario"`
	Pass         bool     `json:"pass"`
	Outputs      []int    `json:"outputs"`
	FinalCounter int      `json:"final_counter"`
	Errors       []string `json:"errors,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Execute conformance scenarios",
		Long: `Execute one or more scenario files against a fresh store and driver.

Each scenario submits work over rounds of host cycles, drives the turns, and
checks its assertions against the resulting trace.

Example:
  turnstile run scenarios/counter_rounds.yaml
  turnstile run scenarios/*.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args, cmd)
		},
	}

	return cmd
}

func runScenarios(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reports := make([]ScenarioReport, 0, len(paths))
	failed := 0
	for _, path := range paths {
		sc, err := harness.LoadScenario(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}

		formatter.VerboseLog("running scenario %s (%d rounds)", sc.Name, len(sc.Rounds))
		result, err := harness.Run(sc)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s failed to execute", sc.Name), err)
		}

		if !result.Pass {
			failed++
		}
		reports = append(reports, ScenarioReport{
			Scenario:     sc.Name,
			Pass:         result.Pass,
			Outputs:      result.Outputs,
			FinalCounter: result.FinalCounter,
			Errors:       result.Errors,
		})
	}

	if opts.Format == "json" {
		if err := formatter.Success(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			status := "PASS"
			if !r.Pass {
				status = "FAIL"
			}
			fmt.Fprintf(formatter.Writer, "%s %s (outputs=%v final=%d)\n",
				status, r.Scenario, r.Outputs, r.FinalCounter)
			for _, e := range r.Errors {
				fmt.Fprintf(formatter.Writer, "  %s\n", e)
			}
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", failed, len(paths)))
	}
	return nil
}
