package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/app"
	"github.com/doeshing/huh-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/huh-go/internal/infrastructure/security"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
)

// NewGuardrailCommand creates the guardrail command
func NewGuardrailCommand(container *app.Container) *cobra.Command {
	guardrailCmd := &cobra.Command{
		Use:   "guardrail",
		Short: "Manage the risk rating of suggested commands",
	}

	guardrailCmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Rate suggested commands before showing or copying them",
			RunE: func(cmd *cobra.Command, args []string) error {
				return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, true)
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop rating suggested commands (not recommended)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, false)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show guardrail status and rules file",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showGuardrailStatus(cmd.Context(), cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "check <command>",
			Short: "Rate a command against the rules",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return checkCommand(cmd.OutOrStdout(), container, strings.Join(args, " "))
			},
		},
	)

	return guardrailCmd
}

func setGuardrailState(ctx context.Context, out io.Writer, container *app.Container, enabled bool) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Security.Enabled = enabled
	if err := helpers.SaveConfigWithValidation(ctx, container, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Guardrail %s.\n", enabledLabel(enabled))
	return nil
}

func showGuardrailStatus(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Fprintf(out, "Guardrail is %s.\n", enabledLabel(cfg.Security.Enabled))
	fmt.Fprintf(out, "Rules file: %s\n", filesystem.FriendlyPath(security.ResolveRulesPath(cfg.Security.RulesFile)))
	if container.Guardrail != nil {
		fmt.Fprintf(out, "Rules loaded: %d\n", container.Guardrail.RuleCount())
	}
	return nil
}

func checkCommand(out io.Writer, container *app.Container, command string) error {
	if container.Guardrail == nil {
		return errors.New("guardrail unavailable")
	}
	risk, err := container.Guardrail.Evaluate(command)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Risk: %s (%s)\n", strings.ToUpper(string(risk.Level)), risk.Action)
	for _, reason := range risk.Reasons {
		fmt.Fprintf(out, "  - %s\n", reason)
	}
	if !risk.AllowsCopy() {
		fmt.Fprintln(out, "huh --copy will refuse this command.")
	}
	return nil
}
