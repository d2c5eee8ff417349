package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile_TOML(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
data_file = "data/aws_finops_data.json"
profile = "prod"
regions = ["us-east-1", "eu-west-1"]
state = "running"
report_name = "inventory"
report_type = ["csv", "pdf"]
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "data/aws_finops_data.json", cfg.DataFile)
	assert.Equal(t, "prod", cfg.Profile)
	assert.Equal(t, []string{"us-east-1", "eu-west-1"}, cfg.Regions)
	assert.Equal(t, "running", cfg.State)
	assert.Equal(t, "inventory", cfg.ReportName)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
profile: staging
region: us-east-1
environment: staging
owner: alice
dir: /tmp/reports
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Profile)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "alice", cfg.Owner)
	assert.Equal(t, "/tmp/reports", cfg.Dir)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := writeConfigFile(t, "config.json", `{
		"data_file": "custom.json",
		"report_type": ["json"]
	}`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "custom.json", cfg.DataFile)
	assert.Equal(t, []string{"json"}, cfg.ReportType)
}

func TestLoadConfigFile_UnsupportedExtension(t *testing.T) {
	path := writeConfigFile(t, "config.ini", "profile=prod")

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "error accessing config file")
}
