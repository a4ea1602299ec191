package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/app"
	"github.com/doeshing/huh-go/internal/infrastructure/cli/commands"
	"github.com/doeshing/huh-go/internal/version"
)

// modelMenuSentinel is the value --model takes when given without a name.
const modelMenuSentinel = "\x00menu"

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	// ConfigPath overrides the config file location when non-empty.
	ConfigPath string
}

type rootFlags struct {
	write      bool
	apiKey     string
	model      string
	use        string
	modelNow   bool
	configMenu bool
	showConfig bool
	copy       bool
	yes        bool
	noCache    bool
	timeout    time.Duration
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.ConfigPath, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.DoctorService.Clipboard = NewClipboard()
	cobra.OnFinalize(func() { _ = container.Close() })

	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "huh [@file] [question...]",
		Short: "huh - explain the last command, answer questions, edit files",
		Long: `huh reads your tmux pane and shell history to explain what just went wrong.

  huh                          explain the last command and its output
  huh how do I undo a commit   ask a question
  huh @main.go what does it do ask about a file
  huh -w @main.go add logging  propose an edit, review it, then write it

Inside tmux, bind it to a key or run it after a failing command.`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, container, flags, args)
		},
	}

	f := root.Flags()
	f.SetInterspersed(false)
	f.BoolVarP(&flags.write, "write", "w", false, "Write mode: rewrite the @file following the instructions")
	f.StringVarP(&flags.apiKey, "api-key", "k", "", "API key for this invocation (overrides the environment)")
	f.StringVarP(&flags.model, "model", "m", "", "Set the default model; without a name, pick one from a menu")
	f.Lookup("model").NoOptDefVal = modelMenuSentinel
	f.StringVarP(&flags.use, "use", "u", "", "Use a model for this invocation only")
	f.BoolVarP(&flags.modelNow, "model-now", "n", false, "Show the current default model")
	f.BoolVarP(&flags.configMenu, "config", "c", false, "Open the interactive configuration menu")
	f.BoolVar(&flags.showConfig, "show-config", false, "Print the current configuration")
	f.BoolVar(&flags.copy, "copy", false, "Copy the suggested command to the clipboard")
	f.BoolVarP(&flags.yes, "yes", "y", false, "Apply edits without asking")
	f.BoolVar(&flags.noCache, "no-cache", false, "Bypass the response cache")
	f.DurationVar(&flags.timeout, "timeout", 0, "Override the API timeout (e.g. 45s)")

	root.AddCommand(
		commands.NewDoctorCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewCacheCommand(container),
		commands.NewInstallCommand(container),
		commands.NewUninstallCommand(container),
		commands.NewStatusCommand(container),
		commands.NewModelsCommand(container),
		commands.NewConfigCommand(container),
		commands.NewGuardrailCommand(container),
		commands.NewVersionCommand(),
	)
	return root, nil
}
