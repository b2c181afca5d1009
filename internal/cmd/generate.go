package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/build"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/cmdutil"
	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

var (
	generateFlags       cmdutil.GenerateFlags
	generateOutputFlags cmdutil.OutputFlags
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Cobertura build files",
		Long: `Generate a cobertura-build.xml for every registered development component
that has source folders and a JUnit archive on its class path.

Each build file is written to the component base location
<workspace>/.dtc/DCs/<vendor>/<name>/cobertura-build.xml and overwritten on
every run. Components that fail are reported and skipped unless --fail-fast
is given.

Examples:
  # Generate build files for the workspace in the current directory
  nwdi-cobertura generate

  # Use a 10 minute JUnit timeout and write the aggregate build file
  nwdi-cobertura generate --junit-timeout 600000 --aggregate

  # Machine readable report
  nwdi-cobertura generate -o json`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	generateFlags.AddTo(cmd)
	generateOutputFlags.AddTo(cmd)

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, err := generateOutputFlags.Parse()
	if err != nil {
		return err
	}

	cfg := generateFlags.Apply(cmd, GetConfig())

	reg, gen, err := cmdutil.NewGenerator(cfg)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	var result *build.Result
	genErr := output.RunWithSpinner(cmd.Context(), func() error {
		var err error
		result, err = gen.Generate(reg.All())
		return err
	},
		output.WithTitle(fmt.Sprintf("Generating build files for %d components", reg.Len())),
		output.WithSpinner(format == output.FormatTable && !verboseFlag),
	)
	if result == nil {
		result = &build.Result{}
	}

	var aggregateFile string
	var aggErr error
	if cfg.Aggregate && genErr == nil {
		aggregateFile, aggErr = build.NewAggregator(gen.Writer(), cfg.Workspace).Aggregate(result)
		if aggErr != nil {
			output.Error("writing aggregate build file", "err", aggErr)
			aggregateFile = ""
		}
	}

	report := cmdutil.NewReport(reg.All(), result, aggregateFile)
	if verboseFlag {
		for _, e := range report.Components {
			output.Info(output.FormatComponentLine(e.Component, e.Status))
		}
		if tree := output.RenderPathTree(cfg.Workspace, cmdutil.WrittenFiles(cfg.Workspace, result, aggregateFile)); tree != "" {
			fmt.Fprint(cmd.ErrOrStderr(), tree)
		}
	}
	if err := output.WriteReport(cmd.OutOrStdout(), format, report); err != nil {
		return err
	}

	return cmdutil.GenerationError(result, genErr, aggErr)
}
