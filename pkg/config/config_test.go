package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `yaml:"name" env:"SAMPLE_NAME"`
	Port   int    `yaml:"port" env:"SAMPLE_PORT"`
	Secret string `yaml:"secret"`
}

func (s *sample) Validate() error {
	if s.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileAndExpansion(t *testing.T) {
	t.Setenv("SAMPLE_SECRET_VALUE", "s3cret")
	path := writeFile(t, "name: site\nport: 8080\nsecret: ${SAMPLE_SECRET_VALUE}\n")

	var cfg sample
	require.NoError(t, Load(path, &cfg))
	assert.Equal(t, "site", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "s3cret", cfg.Secret)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "9090")
	path := writeFile(t, "name: site\nport: 8080\n")

	var cfg sample
	require.NoError(t, Load(path, &cfg))
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "site", cfg.Name)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg := sample{Name: "default", Port: 5002}
	require.NoError(t, Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg))
	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 5002, cfg.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "name: [unclosed\n")
	var cfg sample
	err := Load(path, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeFile(t, "name: site\n")
	var cfg sample
	err := Load(path, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
