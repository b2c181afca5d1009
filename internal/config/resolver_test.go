package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		flag         string
		env          string
		config       string
		def          string
		wantValue    string
		wantSource   ConfigSource
		wantShadowed map[ConfigSource]string
	}{
		{
			name:         "flag wins",
			flag:         "/flag",
			env:          "/env",
			config:       "/config",
			wantValue:    "/flag",
			wantSource:   SourceFlag,
			wantShadowed: map[ConfigSource]string{SourceEnv: "/env", SourceConfig: "/config"},
		},
		{
			name:         "env over config",
			env:          "/env",
			config:       "/config",
			wantValue:    "/env",
			wantSource:   SourceEnv,
			wantShadowed: map[ConfigSource]string{SourceConfig: "/config"},
		},
		{
			name:         "config merged with env is not shadowed",
			env:          "/env",
			config:       "/env",
			wantValue:    "/env",
			wantSource:   SourceEnv,
			wantShadowed: map[ConfigSource]string{},
		},
		{
			name:         "config",
			config:       "/config",
			def:          "/default",
			wantValue:    "/config",
			wantSource:   SourceConfig,
			wantShadowed: map[ConfigSource]string{},
		},
		{
			name:         "default",
			def:          "/default",
			wantValue:    "/default",
			wantSource:   SourceDefault,
			wantShadowed: map[ConfigSource]string{},
		},
		{
			name:         "nothing set",
			wantShadowed: map[ConfigSource]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NWDI_COBERTURA_TEST_VALUE", tt.env)

			got := Resolve(ResolveOptions{
				Key:          "workspace",
				FlagValue:    tt.flag,
				EnvVar:       "NWDI_COBERTURA_TEST_VALUE",
				ConfigValue:  tt.config,
				DefaultValue: tt.def,
			})

			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantShadowed, got.Shadowed)
		})
	}
}
