package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/config"
	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

var configInitForce bool

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage nwdi-cobertura configuration",
		Long: `Manage the nwdi-cobertura configuration file.

The config path is resolved using precedence:
  --config flag > NWDI_COBERTURA_CONFIG env > ~/.nwdi-cobertura/config.yaml`,
	}

	cmd.AddCommand(NewConfigInitCmd())
	cmd.AddCommand(NewConfigVetCmd())

	return cmd
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a commented default configuration file.

Examples:
  # Initialize configuration
  nwdi-cobertura config init

  # Overwrite existing configuration
  nwdi-cobertura config init --force`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine config path")
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return oerrors.NewExistsError("configuration already exists", path,
			"Use --force to overwrite existing configuration.")
	}

	data, err := config.MarshalInit(config.DefaultConfig())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.NewPermissionError("could not create config directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.NewPermissionError("could not write configuration", path, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration written to "+output.StyleNoun.Render(path)))
	fmt.Fprintln(cmd.OutOrStdout(), "Validate with: nwdi-cobertura config vet")

	return nil
}

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet [path]",
		Short: "Validate configuration",
		Long: `Validate a configuration file against the embedded schema.

Environment variables are not applied; only the file content is checked.

Examples:
  # Validate default configuration
  nwdi-cobertura config vet

  # Validate a specific file
  nwdi-cobertura config vet ./ci/config.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfigVet,
	}
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		var err error
		path, err = configPath()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not determine config path")
		}
	}

	output.Debug("validating config", "path", path)

	validator, err := config.NewValidator()
	if err != nil {
		return err
	}

	if err := validator.ValidateFile(path); err != nil {
		return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration valid: "+output.StyleNoun.Render(path)))
	return nil
}

// configPath resolves the config file path: --config flag, then
// NWDI_COBERTURA_CONFIG, then the default location.
func configPath() (string, error) {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.GetConfigFile()
		if err != nil {
			return "", err
		}
	}
	return config.ExpandPath(path)
}
