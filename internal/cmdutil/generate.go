package cmdutil

import (
	"fmt"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/build"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/config"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/loader"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/provider"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/templates"
)

// NewGenerator loads the registry named by cfg and wires a generator for
// the workspace. Registry errors keep their category so callers can map
// them to exit codes.
func NewGenerator(cfg *config.Config) (*component.Registry, *build.Generator, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("configuration not loaded")
	}

	reg, err := loader.LoadRegistry(cfg.Registry)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, nil, err
	}

	gen, err := build.NewGenerator(build.Options{
		Provider: provider.NewAntHelper(cfg.Workspace, reg),
		Renderer: renderer,
		Params:   cfg.Params(),
		FailFast: cfg.FailFast,
	})
	if err != nil {
		return nil, nil, err
	}

	return reg, gen, nil
}

// GenerationError maps the outcome of a run to the command error. It returns
// nil when every eligible component was written.
func GenerationError(result *build.Result, genErr, aggErr error) error {
	if genErr != nil {
		return oerrors.NewExitError(oerrors.NewGenerationError(genErr.Error(), nil), oerrors.ExitGenerationError)
	}

	failures := result.Failures()
	if len(failures) == 0 && aggErr == nil {
		return nil
	}

	context := make(map[string]string, len(failures)+1)
	for _, f := range failures {
		context[f.Component] = f.Err.Error()
	}
	if aggErr != nil {
		context[build.AggregateFileName] = aggErr.Error()
	}

	return oerrors.NewExitError(
		oerrors.NewGenerationError(fmt.Sprintf("%d build file(s) could not be written", len(context)), context),
		oerrors.ExitGenerationError,
	)
}
