package terminal

import (
	"context"
	"strconv"

	"github.com/doeshing/huh-go/internal/domain"
)

// detectShell follows the order: version variables, the parent process
// name, then $SHELL.
func detectShell(ctx context.Context, env environment) domain.ShellKind {
	if env.getenv("ZSH_VERSION") != "" {
		return domain.ShellZsh
	}
	if env.getenv("BASH_VERSION") != "" {
		return domain.ShellBash
	}
	if env.getenv("FISH_VERSION") != "" {
		return domain.ShellFish
	}

	if ppid := env.ppid(); ppid > 1 {
		out, err := env.run(ctx, "ps", "-p", strconv.Itoa(ppid), "-o", "comm=")
		if err == nil {
			if kind := domain.ParseShellKind(out); kind != domain.ShellUnknown {
				return kind
			}
		}
	}

	return domain.ParseShellKind(env.getenv("SHELL"))
}
