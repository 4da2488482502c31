package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Command is one of the supported terraform subcommands. There is no default:
// an invocation must name its command explicitly.
type Command string

const (
	CommandInit     Command = "init"
	CommandValidate Command = "validate"
	CommandPlan     Command = "plan"
	CommandApply    Command = "apply"
	CommandDestroy  Command = "destroy"
)

// Commands returns the supported subcommands in documentation order.
func Commands() []Command {
	return []Command{CommandInit, CommandValidate, CommandPlan, CommandApply, CommandDestroy}
}

// Known reports whether c is one of the supported subcommands.
func (c Command) Known() bool {
	switch c {
	case CommandInit, CommandValidate, CommandPlan, CommandApply, CommandDestroy:
		return true
	}
	return false
}

// LogLevel controls diagnostic verbosity only; it never affects control flow.
type LogLevel string

const (
	LogLevelDebug   LogLevel = "DEBUG"
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARNING"
	LogLevelError   LogLevel = "ERROR"
)

// ParseLogLevel maps a raw level string to a LogLevel, defaulting to INFO for
// anything it does not recognize.
func ParseLogLevel(value string) LogLevel {
	switch LogLevel(strings.ToUpper(strings.TrimSpace(value))) {
	case LogLevelDebug:
		return LogLevelDebug
	case LogLevelWarning:
		return LogLevelWarning
	case LogLevelError:
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// AzureConfig carries the optional Azure identifiers. Which of them are set
// drives authentication method resolution.
type AzureConfig struct {
	SubscriptionID string `yaml:"azure_subscription_id"`
	TenantID       string `yaml:"azure_tenant_id"`
	ClientID       string `yaml:"azure_client_id"`
}

// Complete reports whether all three identifiers are present.
func (a AzureConfig) Complete() bool {
	return a.SubscriptionID != "" && a.TenantID != "" && a.ClientID != ""
}

// Empty reports whether none of the identifiers are present.
func (a AzureConfig) Empty() bool {
	return a.SubscriptionID == "" && a.TenantID == "" && a.ClientID == ""
}

// Config is the single source of truth for a run. It is constructed once per
// invocation and treated as immutable after validation.
type Config struct {
	TFDirectory       string      `yaml:"tf_directory"`
	TFVarsFiles       []string    `yaml:"tfvars_files"`
	BackendConfigFile string      `yaml:"backend_config_file"`
	Command           Command     `yaml:"command"`
	Workspace         string      `yaml:"workspace"`
	Azure             AzureConfig `yaml:",inline"`
	VarOverrides      string      `yaml:"var_overrides"`
	LogLevel          LogLevel    `yaml:"log_level"`
}

const inputPrefix = "INPUT_"

// FromEnv builds a Config from the INPUT_* environment variables the CI
// bootstrap exports. An unknown command value is kept verbatim so Validate
// can report it alongside every other violation.
func FromEnv() *Config {
	get := func(name, fallback string) string {
		if value := os.Getenv(inputPrefix + strings.ToUpper(name)); value != "" {
			return value
		}
		return fallback
	}

	return &Config{
		TFDirectory:       get("tf_directory", "."),
		TFVarsFiles:       splitList(get("tfvars_files", "")),
		BackendConfigFile: get("backend_config_file", ""),
		Command:           Command(strings.ToLower(strings.TrimSpace(get("command", "")))),
		Workspace:         get("workspace", "default"),
		Azure: AzureConfig{
			SubscriptionID: get("azure_subscription_id", ""),
			TenantID:       get("azure_tenant_id", ""),
			ClientID:       get("azure_client_id", ""),
		},
		VarOverrides: get("var_overrides", ""),
		LogLevel:     ParseLogLevel(get("log_level", "INFO")),
	}
}

// FromFile builds a Config from a YAML file carrying the same keys as the CI
// input mapping. Used for local and development runs.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.TFDirectory == "" {
		cfg.TFDirectory = "."
	}
	if cfg.Workspace == "" {
		cfg.Workspace = "default"
	}
	cfg.Command = Command(strings.ToLower(strings.TrimSpace(string(cfg.Command))))
	cfg.LogLevel = ParseLogLevel(string(cfg.LogLevel))

	return cfg, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ConfigurationError aggregates every validation diagnostic for a run.
type ConfigurationError struct {
	Diagnostics []string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Diagnostics, "; ")
}
