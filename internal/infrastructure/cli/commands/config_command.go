package commands

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"

	"github.com/doeshing/huh-go/internal/app"
	configapp "github.com/doeshing/huh-go/internal/application/config"
	configinfra "github.com/doeshing/huh-go/internal/infrastructure/config"
)

const defaultEditor = "vi"

// NewConfigCommand creates the config command. The interactive menu lives
// on the root command (huh -c).
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Locate, validate, edit or reset the configuration file",
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				loader, err := configLoader(container)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the configuration file",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := container.ConfigProvider.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				if err := configapp.Validate(cfg); err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Edit the configuration in $VISUAL or $EDITOR",
			RunE: func(cmd *cobra.Command, args []string) error {
				return editConfigurationInEditor(container)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the configuration to defaults (the old file is kept as .bak)",
			RunE: func(cmd *cobra.Command, args []string) error {
				loader, err := configLoader(container)
				if err != nil {
					return err
				}
				if _, err := os.Stat(loader.Path()); err == nil {
					if _, err := loader.Backup(); err != nil {
						return fmt.Errorf("failed to create configuration backup: %w", err)
					}
				}
				if err := loader.Reset(); err != nil {
					return fmt.Errorf("failed to reset configuration: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset at %s\n", loader.Path())
				return nil
			},
		},
	)

	return configCmd
}

func configLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, errors.New("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// editConfigurationInEditor opens the configuration file in the user's
// editor. The editor variable may carry arguments, e.g. "code --wait".
func editConfigurationInEditor(container *app.Container) error {
	loader, err := configLoader(container)
	if err != nil {
		return err
	}

	argv, err := EditorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"))
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], append(argv[1:], loader.Path())...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", argv[0], err)
	}
	return nil
}

// EditorCommand splits the first non-empty editor setting into argv with
// shell quoting rules, falling back to vi.
func EditorCommand(candidates ...string) ([]string, error) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		fields, err := shell.Fields(candidate, func(string) string { return "" })
		if err != nil {
			return nil, fmt.Errorf("parse editor %q: %w", candidate, err)
		}
		if len(fields) == 0 {
			return nil, errors.New("editor setting is blank")
		}
		return fields, nil
	}
	return []string{defaultEditor}, nil
}
