package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/huh-go/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show huh version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), versionInfo())
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func versionInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "huh %s", version.Version)
	if version.Commit != "" {
		fmt.Fprintf(&b, " (%s", version.Commit)
		if version.BuildDate != "" {
			fmt.Fprintf(&b, ", built %s", version.BuildDate)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, "\n%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return b.String()
}
