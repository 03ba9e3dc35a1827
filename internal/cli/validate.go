package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/turnstile/internal/harness"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidationReport is one scenario file's validation outcome.
type ValidationReport struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Validate scenario files without executing them",
		Long: `Parse and validate one or more scenario files.

Checks stage names, ops, cycle counts, and assertion types. No store or
driver is created and no work runs.

Example:
  turnstile validate scenarios/*.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateScenarios(opts, args, cmd)
		},
	}

	return cmd
}

func validateScenarios(opts *ValidateOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reports := make([]ValidationReport, 0, len(paths))
	invalid := 0
	for _, path := range paths {
		report := ValidationReport{Path: path, Valid: true}
		if _, err := harness.LoadScenario(path); err != nil {
			report.Valid = false
			report.Error = err.Error()
			invalid++
		}
		reports = append(reports, report)
	}

	if opts.Format == "json" {
		if err := formatter.Success(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			if r.Valid {
				fmt.Fprintf(formatter.Writer, "OK %s\n", r.Path)
			} else {
				fmt.Fprintf(formatter.Writer, "INVALID %s: %s\n", r.Path, r.Error)
			}
		}
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario files invalid", invalid, len(paths)))
	}
	return nil
}
