package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/app"
	"github.com/doeshing/huh-go/internal/application/assist"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/huh-go/internal/infrastructure/cli/menu"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
)

var errNotInteractive = errors.New("this needs an interactive terminal")

func run(cmd *cobra.Command, container *app.Container, flags *rootFlags, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return err
	}
	renderer := NewRenderer(out, cfg)

	// pflag binds "--model NAME" and "-m NAME" to the menu sentinel and
	// leaves NAME as the first positional argument.
	if flags.model == modelMenuSentinel && len(args) > 0 {
		if len(args) > 1 {
			return fmt.Errorf("--model takes a single model name, got %q", strings.Join(args, " "))
		}
		flags.model, args = args[0], nil
	}

	switch {
	case flags.modelNow:
		fmt.Fprintf(out, "Current default model: %s\n", cfg.Preferences.DefaultModel)
		return nil
	case flags.showConfig:
		renderer.Config(cfg, container.ConfigLoader.Path())
		return nil
	case flags.configMenu:
		return runMenu(ctx, container, menu.NewConfigMachine(cfg), renderer, out)
	case flags.model == modelMenuSentinel:
		return runMenu(ctx, container, menu.NewModelMachine(cfg), renderer, out)
	case flags.model != "":
		previous := cfg.Preferences.DefaultModel
		if err := cfg.SetDefaultModel(flags.model); err != nil {
			return err
		}
		if err := helpers.SaveConfigWithValidation(ctx, container, cfg); err != nil {
			return err
		}
		renderer.Success(fmt.Sprintf("Default model changed from %s to %s", previous, flags.model))
		return nil
	}

	inv, err := ParseInvocation(args, flags.write)
	if err != nil {
		return err
	}
	opts := assist.Options{
		ModelOverride: flags.use,
		APIKey:        flags.apiKey,
		Timeout:       flags.timeout,
		NoCache:       flags.noCache,
	}
	spinner := NewSpinner(cmd.ErrOrStderr(), "thinking", cfg.Display.Spinner && IsTerminal(cmd.ErrOrStderr()))

	switch inv.Kind {
	case InvokeWrite:
		spinner.Start()
		proposal, err := container.AssistService.ProposeEdit(ctx, assist.EditRequest{
			Path:         inv.Path,
			Instructions: inv.Text,
			Options:      opts,
		})
		spinner.Stop()
		if err != nil {
			return err
		}
		return applyProposal(ctx, container, cfg, flags, renderer, out, proposal)
	case InvokeQuery:
		spinner.Start()
		answer, err := container.AssistService.Query(ctx, assist.QueryRequest{
			Query:    inv.Text,
			FilePath: inv.Path,
			Options:  opts,
		})
		spinner.Stop()
		if err != nil {
			return err
		}
		renderer.Answer(answer)
		return copySuggestion(flags, renderer, answer)
	default:
		spinner.Start()
		answer, err := container.AssistService.Analyze(ctx, assist.AnalyzeRequest{Options: opts})
		spinner.Stop()
		if errors.Is(err, domain.ErrNoMultiplexerSession) {
			return fmt.Errorf("%w\nrun huh inside tmux to explain the last command, or ask directly: huh <question>", err)
		}
		if err != nil {
			return err
		}
		renderer.Answer(answer)
		return copySuggestion(flags, renderer, answer)
	}
}

// applyProposal shows the change summary, asks for confirmation when the
// config demands it, and writes or discards the proposal.
func applyProposal(ctx context.Context, container *app.Container, cfg domain.Config, flags *rootFlags, renderer *Renderer, out io.Writer, proposal assist.EditProposal) error {
	renderer.Proposal(proposal)
	if proposal.NoChanges() {
		return container.AssistService.ApplyEdit(ctx, proposal)
	}

	if cfg.Preferences.ConfirmBeforeWrite && !flags.yes {
		prompter := NewPrompter(nil, out)
		if !prompter.Enabled() {
			container.AssistService.Discard(ctx, proposal)
			return fmt.Errorf("%w to confirm the edit; pass --yes to apply without asking", errNotInteractive)
		}
		fmt.Fprintln(out)
		ok, err := prompter.Confirm("Apply these changes?")
		if err != nil {
			return err
		}
		if !ok {
			container.AssistService.Discard(ctx, proposal)
			fmt.Fprintln(out, "Changes discarded.")
			return nil
		}
	}

	if err := container.AssistService.ApplyEdit(ctx, proposal); err != nil {
		return err
	}
	verb := "Updated"
	if !proposal.Exists {
		verb = "Created"
	}
	renderer.Success(fmt.Sprintf("%s %s", verb, filesystem.FriendlyPath(proposal.Path)))
	return nil
}

func copySuggestion(flags *rootFlags, renderer *Renderer, answer assist.Answer) error {
	if !flags.copy {
		return nil
	}
	suggestion := answer.Analysis.Suggestion
	if suggestion == "" {
		renderer.Warning("no command suggested; nothing copied")
		return nil
	}
	if risk := answer.Analysis.Risk; risk != nil && !risk.AllowsCopy() {
		renderer.Warning(fmt.Sprintf("not copied: guardrail rated this command %s", risk.Level))
		return nil
	}
	if err := NewClipboard().Copy(suggestion); err != nil {
		renderer.Warning(err.Error())
		return nil
	}
	renderer.Success("Copied to clipboard")
	return nil
}

func runMenu(ctx context.Context, container *app.Container, machine *menu.Machine, renderer *Renderer, out io.Writer) error {
	if !IsTerminal(os.Stdin) {
		return fmt.Errorf("%w for the menu; edit %s instead", errNotInteractive, filesystem.FriendlyPath(container.ConfigLoader.Path()))
	}
	if err := menu.Run(ctx, machine, os.Stdin, out); err != nil {
		return err
	}
	if msg := machine.Message(); msg != "" {
		fmt.Fprintln(out, msg)
	}
	cfg, save := machine.Result()
	if !save {
		fmt.Fprintln(out, "Configuration unchanged.")
		return nil
	}
	if err := helpers.SaveConfigWithValidation(ctx, container, cfg); err != nil {
		return err
	}
	renderer.Success("Configuration saved to " + filesystem.FriendlyPath(container.ConfigLoader.Path()))
	return nil
}
