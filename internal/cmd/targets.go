package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/build"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/cmdutil"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/provider"
)

var targetsRenderFlag bool

// NewTargetsCmd creates the targets command.
func NewTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets [vendor/name]",
		Short: "Show Ant target names of components",
		Long: `Show the Ant target and class path names derived for each registered
component, and whether a build file would be generated for it.

With a component argument the full template context is shown. Add --render to
print the build file instead of writing it.

Examples:
  # List all components
  nwdi-cobertura targets

  # Show the context of one component
  nwdi-cobertura targets example.org/lib/dc1

  # Print its build file
  nwdi-cobertura targets example.org/lib/dc1 --render`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTargets,
	}

	cmd.Flags().BoolVar(&targetsRenderFlag, "render", false,
		"Print the build file of the given component")

	return cmd
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	reg, gen, err := cmdutil.NewGenerator(cfg)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	if len(args) == 0 {
		if targetsRenderFlag {
			return oerrors.NewExitError(
				fmt.Errorf("--render requires a component: %w", oerrors.ErrValidation),
				oerrors.ExitValidationError,
			)
		}
		return listTargets(cmd, reg.All(), gen)
	}

	c := lookupComponent(reg, args[0])
	if c == nil {
		return oerrors.NewExitError(oerrors.NewNotFoundError(
			fmt.Sprintf("component %q is not registered", args[0]),
			cfg.Registry,
			"Run 'nwdi-cobertura targets' to list registered components",
		), oerrors.ExitNotFound)
	}

	ctx, eligible, err := gen.Context(c)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitGenerationError)
	}
	if !eligible {
		output.Warn("component is not eligible: no sources or no JUnit archive", "component", c.Key())
		base := provider.NewAntHelper(cfg.Workspace, reg).BaseLocation(c)
		ctx = build.NewContextBuilder(cfg.Params()).Build(c, base, nil, nil)
	}

	if targetsRenderFlag {
		if err := gen.Writer().Render(c, ctx, cmd.OutOrStdout()); err != nil {
			return oerrors.NewExitError(err, oerrors.ExitGenerationError)
		}
		return nil
	}

	t := output.NewTable("KEY", "VALUE")
	for _, v := range ctx.Values() {
		t.Row(v.Key, formatValue(v.Value))
	}
	return t.Fprint(cmd.OutOrStdout())
}

func listTargets(cmd *cobra.Command, components []*component.Component, gen *build.Generator) error {
	t := output.NewTable("COMPONENT", "DEFAULT TARGET", "CLASSPATH ID", "REPORT TARGET", "STATUS").StatusColumn(4)
	for _, c := range components {
		names := build.NamesFor(c)
		status := output.StatusSkipped
		if _, eligible, err := gen.Context(c); err != nil {
			status = output.StatusFailed
		} else if eligible {
			status = output.StatusGenerated
		}
		t.Row(c.Key(), names.DefaultTarget, names.ClasspathID, names.ReportTarget, status)
	}

	return t.Fprint(cmd.OutOrStdout())
}

// lookupComponent finds a component by vendor/name. The name itself may
// contain slashes, so the vendor ends at the first slash.
func lookupComponent(reg *component.Registry, key string) *component.Component {
	vendor, name, ok := strings.Cut(key, "/")
	if !ok {
		return nil
	}
	return reg.Get(vendor, name)
}

func formatValue(v any) string {
	switch value := v.(type) {
	case []string:
		return strings.Join(value, "\n")
	case int:
		return strconv.Itoa(value)
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}
