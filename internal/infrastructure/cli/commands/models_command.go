package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/app"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/infrastructure/ai"
	"github.com/doeshing/huh-go/internal/infrastructure/cli/helpers"
)

// NewModelsCommand creates the models command with its subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "List, select and test configured models",
	}

	modelsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List configured models",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listModels(cmd.Context(), cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "use <name>",
			Short: "Set the default model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setDefaultModel(cmd.Context(), cmd.OutOrStdout(), container, args[0])
			},
		},
		&cobra.Command{
			Use:   "test <name>",
			Short: "Send a one-line request to check credentials and connectivity",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return testModel(cmd.Context(), cmd.OutOrStdout(), container, args[0])
			},
		},
	)

	return modelsCmd
}

func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROVIDER\tMODEL ID\tKEY\tDEFAULT")
	for _, model := range cfg.Models {
		defaultMarker := ""
		if cfg.Preferences.DefaultModel == model.Name {
			defaultMarker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			model.Name,
			model.Kind(),
			model.ModelID,
			keyState(model),
			defaultMarker)
	}
	return w.Flush()
}

func keyState(model domain.ModelDefinition) string {
	if model.Kind() == domain.ProviderOllama {
		return "not needed"
	}
	if ai.ResolveAPIKey(model, "") != "" {
		return "set"
	}
	if model.AuthEnvVar != "" {
		return "missing $" + model.AuthEnvVar
	}
	return "missing"
}

func setDefaultModel(ctx context.Context, out io.Writer, container *app.Container, name string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.SetDefaultModel(name); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(cfg.ModelNames(), ", "))
	}
	if err := helpers.SaveConfigWithValidation(ctx, container, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Default model set to %s.\n", name)
	return nil
}

func testModel(ctx context.Context, out io.Writer, container *app.Container, name string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	model, err := cfg.ResolveModel(name)
	if err != nil {
		return err
	}

	provider, err := ai.NewFactory().ForModel(model, ai.ResolveAPIKey(model, ""))
	if err != nil {
		return fmt.Errorf("failed to create provider for model %s: %w", name, err)
	}

	testCtx, cancel := context.WithTimeout(ctx, cfg.GetTimeout())
	defer cancel()

	started := time.Now()
	resp, err := provider.Complete(testCtx, domain.CompletionRequest{
		Mode:        domain.ModeQuery,
		Prompt:      "Reply with the single word OK.",
		Temperature: 0,
		MaxTokens:   16,
	})
	if err != nil {
		return fmt.Errorf("model %s test failed: %w", name, err)
	}

	fmt.Fprintf(out, "Model %s responded in %s: %s\n", name, time.Since(started).Round(time.Millisecond), strings.TrimSpace(resp.Text))
	return nil
}
