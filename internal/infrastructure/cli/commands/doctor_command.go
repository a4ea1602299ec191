package commands

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/app"
	"github.com/doeshing/huh-go/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose tmux, shell history, API keys and configuration",
		Long: `Run environment checks and print one line per check.

The command exits non-zero when any check fails. Warnings describe
features that will be degraded (for example no shell history, or no
clipboard for --copy) but do not stop huh from working.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}
			report, err := container.DoctorService.Run(cmd.Context())
			// The report is shown even when config loading failed.
			if printErr := writeDoctorReport(cmd.OutOrStdout(), report); printErr != nil {
				return printErr
			}
			if err != nil {
				return fmt.Errorf("diagnostics aborted: %w", err)
			}
			if report.Failed() {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}

var statusMarks = map[domain.HealthStatus]string{
	domain.HealthOK:    "ok",
	domain.HealthWarn:  "warn",
	domain.HealthError: "FAIL",
}

func writeDoctorReport(out io.Writer, report domain.HealthReport) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, check := range report.Checks {
		fmt.Fprintf(w, "[%s]\t%s\t%s\n", statusMarks[check.Status], check.Name, check.Details)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	ok, warn, failed := report.Counts()
	fmt.Fprintf(out, "\n%d ok, %d warnings, %d failed\n", ok, warn, failed)
	return nil
}
