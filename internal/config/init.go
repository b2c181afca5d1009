package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// keyComments document the keys written by config init.
var keyComments = map[string]string{
	"workspace":    "NWDI workspace root containing .dtc/DCs (default: current directory)",
	"registry":     "Component registry file, .yaml or .toml (default: <workspace>/components.yaml)",
	"junitTimeout": "JUnit timeout in milliseconds, 0 disables the timeout",
	"encoding":     "Java source encoding",
	"coberturaDir": "Folder holding the Cobertura jars (default: <workspace>/.cobertura/lib)",
	"aggregate":    "Also write <workspace>/cobertura-build-all.xml",
	"failFast":     "Stop at the first component that fails",
	"log":          "Logging settings",
}

// initConfig lists every key so that the written file documents all of them.
type initConfig struct {
	Workspace    string  `yaml:"workspace"`
	Registry     string  `yaml:"registry"`
	JUnitTimeout int     `yaml:"junitTimeout"`
	Encoding     string  `yaml:"encoding"`
	CoberturaDir string  `yaml:"coberturaDir"`
	Aggregate    bool    `yaml:"aggregate"`
	FailFast     bool    `yaml:"failFast"`
	Log          initLog `yaml:"log"`
}

type initLog struct {
	Timestamps bool `yaml:"timestamps"`
}

// MarshalInit renders cfg as a commented YAML config file.
func MarshalInit(cfg *Config) ([]byte, error) {
	timestamps := true
	if cfg.Log.Timestamps != nil {
		timestamps = *cfg.Log.Timestamps
	}

	var doc yaml.Node
	if err := doc.Encode(initConfig{
		Workspace:    cfg.Workspace,
		Registry:     cfg.Registry,
		JUnitTimeout: cfg.JUnitTimeout,
		Encoding:     cfg.Encoding,
		CoberturaDir: cfg.CoberturaDir,
		Aggregate:    cfg.Aggregate,
		FailFast:     cfg.FailFast,
		Log:          initLog{Timestamps: timestamps},
	}); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	// Mapping nodes alternate key and value.
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if comment, ok := keyComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = comment
		}
	}
	doc.HeadComment = "nwdi-cobertura configuration"

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}
