package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("INPUT_TF_DIRECTORY", "infra/live")
	t.Setenv("INPUT_TFVARS_FILES", "common.tfvars, prod.tfvars")
	t.Setenv("INPUT_BACKEND_CONFIG_FILE", "backend.conf")
	t.Setenv("INPUT_COMMAND", " Plan ")
	t.Setenv("INPUT_WORKSPACE", "prod")
	t.Setenv("INPUT_AZURE_SUBSCRIPTION_ID", "sub-id")
	t.Setenv("INPUT_AZURE_TENANT_ID", "tenant-id")
	t.Setenv("INPUT_AZURE_CLIENT_ID", "client-id")
	t.Setenv("INPUT_VAR_OVERRIDES", "a=1")
	t.Setenv("INPUT_LOG_LEVEL", "debug")

	cfg := FromEnv()

	assert.Equal(t, "infra/live", cfg.TFDirectory)
	assert.Equal(t, []string{"common.tfvars", "prod.tfvars"}, cfg.TFVarsFiles)
	assert.Equal(t, "backend.conf", cfg.BackendConfigFile)
	assert.Equal(t, CommandPlan, cfg.Command)
	assert.Equal(t, "prod", cfg.Workspace)
	assert.Equal(t, AzureConfig{SubscriptionID: "sub-id", TenantID: "tenant-id", ClientID: "client-id"}, cfg.Azure)
	assert.Equal(t, "a=1", cfg.VarOverrides)
	assert.Equal(t, LogLevelDebug, cfg.LogLevel)
}

func TestFromEnvDefaults(t *testing.T) {
	for _, name := range []string{
		"INPUT_TF_DIRECTORY", "INPUT_TFVARS_FILES", "INPUT_BACKEND_CONFIG_FILE",
		"INPUT_COMMAND", "INPUT_WORKSPACE", "INPUT_AZURE_SUBSCRIPTION_ID",
		"INPUT_AZURE_TENANT_ID", "INPUT_AZURE_CLIENT_ID", "INPUT_VAR_OVERRIDES",
		"INPUT_LOG_LEVEL",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	cfg := FromEnv()

	assert.Equal(t, ".", cfg.TFDirectory)
	assert.Empty(t, cfg.TFVarsFiles)
	// the command has no default; leaving it unset must be caught by Validate
	assert.Equal(t, Command(""), cfg.Command)
	assert.Equal(t, "default", cfg.Workspace)
	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
	assert.True(t, cfg.Azure.Empty())
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	contents := `
tf_directory: infra/live
tfvars_files:
  - common.tfvars
  - prod.tfvars
backend_config_file: backend.conf
command: APPLY
workspace: prod
azure_subscription_id: sub-id
azure_tenant_id: tenant-id
azure_client_id: client-id
var_overrides: |-
  a=1
  b=2
log_level: warning
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "infra/live", cfg.TFDirectory)
	assert.Equal(t, []string{"common.tfvars", "prod.tfvars"}, cfg.TFVarsFiles)
	assert.Equal(t, CommandApply, cfg.Command)
	assert.Equal(t, "prod", cfg.Workspace)
	assert.Equal(t, "sub-id", cfg.Azure.SubscriptionID)
	assert.Equal(t, "a=1\nb=2", cfg.VarOverrides)
	assert.Equal(t, LogLevelWarning, cfg.LogLevel)
}

func TestFromFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("command: plan\n"), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.TFDirectory)
	assert.Equal(t, "default", cfg.Workspace)
	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, LogLevelWarning, ParseLogLevel(" WARNING "))
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("INFO"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
}

func TestCommandKnown(t *testing.T) {
	for _, c := range Commands() {
		assert.True(t, c.Known(), string(c))
	}
	assert.False(t, Command("deploy").Known())
	assert.False(t, Command("").Known())
}
