// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/config"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool
	workspaceFlag  string
	registryFlag   string

	// Resolved configuration (loaded during PersistentPreRunE)
	loadedConfig *config.Config
)

// NewRootCmd creates the root command for the nwdi-cobertura CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nwdi-cobertura",
		Short: "Generate Cobertura test build files for NWDI development components",
		Long: `nwdi-cobertura writes one Ant build file per development component that
instruments the compiled classes with Cobertura, compiles and runs the JUnit
tests and produces a coverage report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: NWDI_COBERTURA_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "NWDI workspace root (env: NWDI_COBERTURA_WORKSPACE)")
	rootCmd.PersistentFlags().StringVar(&registryFlag, "registry", "", "Component registry file (env: NWDI_COBERTURA_REGISTRY)")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewTargetsCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().Load(configFlag)
	if err != nil {
		output.Debug("config load error", "error", err)
		// Don't fail here - config vet reports broken files
		cfg = config.DefaultConfig()
	}

	workspace := config.Resolve(config.ResolveOptions{
		Key:          "workspace",
		FlagValue:    workspaceFlag,
		EnvVar:       config.EnvVar("workspace"),
		ConfigValue:  cfg.Workspace,
		DefaultValue: ".",
	})
	cfg.Workspace, err = config.AbsPath(workspace.Value)
	if err != nil {
		return err
	}

	registry := config.Resolve(config.ResolveOptions{
		Key:         "registry",
		FlagValue:   registryFlag,
		EnvVar:      config.EnvVar("registry"),
		ConfigValue: cfg.Registry,
	})
	if registry.Value != "" {
		cfg.Registry, err = config.AbsPath(registry.Value)
		if err != nil {
			return err
		}
	}

	loadedConfig = cfg.WithDefaults()

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if loadedConfig.Log.Timestamps != nil {
		logCfg.Timestamps = loadedConfig.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	output.Debug("initializing CLI",
		"config", configFlag,
		"workspace", loadedConfig.Workspace,
		"workspaceSource", workspace.Source,
		"registry", loadedConfig.Registry,
		"registrySource", registry.Source,
	)

	return nil
}

// GetConfig returns the resolved configuration.
func GetConfig() *config.Config {
	if loadedConfig == nil {
		return config.DefaultConfig().WithDefaults()
	}
	return loadedConfig
}
