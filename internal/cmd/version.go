package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show nwdi-cobertura version information.

Displays:
  - CLI version, commit, and build date
  - Go and CUE SDK versions`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
	return err
}
