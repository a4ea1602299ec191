package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/app"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/infrastructure/cli/helpers"
)

// NewInstallCommand creates the install command
func NewInstallCommand(container *app.Container) *cobra.Command {
	var shell string
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the history flush hook so huh sees your latest commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShellInstall(cmd, container, shell, force)
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "", "Shell to install (zsh|bash|fish|all, auto-detected by default)")
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite the hook script and rc entry")

	return cmd
}

// NewUninstallCommand creates the uninstall command
func NewUninstallCommand(container *app.Container) *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the history flush hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShellUninstall(cmd, container, shell)
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "", "Shell to uninstall (zsh|bash|fish|all, auto-detected by default)")

	return cmd
}

// NewStatusCommand creates the status command
func NewStatusCommand(container *app.Container) *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the history flush hook is installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShellStatus(cmd, container, shell)
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "all", "Shell to inspect (zsh|bash|fish|all)")

	return cmd
}

func targetShells(cmd *cobra.Command, container *app.Container, shellFlag string) ([]domain.ShellKind, error) {
	if container.ShellIntegrator == nil {
		return nil, errors.New(ErrShellInstallerUnavailable)
	}
	shells, err := helpers.DetermineTargetShells(cmd.Context(), shellFlag, container.HistoryReader)
	if err != nil {
		return nil, fmt.Errorf("failed to determine target shells: %w", err)
	}
	return shells, nil
}

// runShellInstall installs shell integration
func runShellInstall(cmd *cobra.Command, container *app.Container, shellFlag string, force bool) error {
	shells, err := targetShells(cmd, container, shellFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, sh := range shells {
		result, err := container.ShellIntegrator.Install(sh, force)
		if err != nil {
			return fmt.Errorf("failed to install for %s: %w", sh, err)
		}
		if !result.RCUpdated {
			fmt.Fprintf(out, "[%s] hook script refreshed; %s already sources it\n", result.Shell, result.RCFile)
			continue
		}
		fmt.Fprintf(out, "Installed for %s\nScript: %s\nRC File: %s\n", result.Shell, result.ScriptPath, result.RCFile)
		fmt.Fprintf(out, "Reload by running: source %s (or open a new shell)\n", result.RCFile)
	}

	return nil
}

// runShellUninstall removes shell integration
func runShellUninstall(cmd *cobra.Command, container *app.Container, shellFlag string) error {
	shells, err := targetShells(cmd, container, shellFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, sh := range shells {
		result, err := container.ShellIntegrator.Uninstall(sh)
		if err != nil {
			return fmt.Errorf("failed to uninstall for %s: %w", sh, err)
		}
		if !result.RCUpdated {
			fmt.Fprintf(out, "[%s] not installed\n", result.Shell)
			continue
		}
		fmt.Fprintf(out, "Removed sourcing line for %s in %s\n", result.Shell, result.RCFile)
	}

	return nil
}

func runShellStatus(cmd *cobra.Command, container *app.Container, shellFlag string) error {
	shells, err := targetShells(cmd, container, shellFlag)
	if err != nil {
		return err
	}

	for _, sh := range shells {
		status := container.ShellIntegrator.Status(sh)
		if status.Error != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", sh, status.Error)
			continue
		}
		state := "not installed"
		switch {
		case status.ScriptExists && status.LinePresent:
			state = "installed"
		case status.ScriptExists || status.LinePresent:
			state = "partially installed (run huh install --force)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s (%s)\n", status.Shell, state, status.RCFile)
	}

	return nil
}
