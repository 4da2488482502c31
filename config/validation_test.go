package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFS struct {
	files    map[string]bool
	dirs     map[string]bool
	fileErrs map[string]error
	dirErrs  map[string]error
}

func (f *fakeFS) FileExists(path string) (bool, error) {
	if err := f.fileErrs[path]; err != nil {
		return false, err
	}
	return f.files[path], nil
}

func (f *fakeFS) DirExists(path string) (bool, error) {
	if err := f.dirErrs[path]; err != nil {
		return false, err
	}
	return f.dirs[path], nil
}

func validConfig() *Config {
	return &Config{
		TFDirectory: "env",
		Command:     CommandPlan,
		Workspace:   "default",
		LogLevel:    LogLevelInfo,
	}
}

func TestValidate(t *testing.T) {
	fs := &fakeFS{
		dirs: map[string]bool{"env": true},
		files: map[string]bool{
			"env/a.tfvars":     true,
			"env/backend.conf": true,
		},
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErrs  []string
		wantValid bool
	}{
		{
			name:      "valid config",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name:     "empty directory",
			mutate:   func(c *Config) { c.TFDirectory = "" },
			wantErrs: []string{"tf_directory cannot be empty"},
		},
		{
			name:     "missing directory",
			mutate:   func(c *Config) { c.TFDirectory = "nope" },
			wantErrs: []string{"tf_directory not found"},
		},
		{
			name:     "empty command",
			mutate:   func(c *Config) { c.Command = "" },
			wantErrs: []string{"command cannot be empty"},
		},
		{
			name:   "unknown command names the invalid value",
			mutate: func(c *Config) { c.Command = "deploy" },
			wantErrs: []string{
				"Invalid command: deploy (valid commands: init, validate, plan, apply, destroy)",
			},
		},
		{
			name:      "existing tfvars and backend files",
			mutate:    func(c *Config) { c.TFVarsFiles = []string{"a.tfvars"}; c.BackendConfigFile = "backend.conf" },
			wantValid: true,
		},
		{
			name:   "missing files reported individually",
			mutate: func(c *Config) { c.TFVarsFiles = []string{"a.tfvars", "x.tfvars", "y.tfvars"} },
			wantErrs: []string{
				"tfvars file not found: x.tfvars",
				"tfvars file not found: y.tfvars",
			},
		},
		{
			name:     "empty tfvars entry",
			mutate:   func(c *Config) { c.TFVarsFiles = []string{""} },
			wantErrs: []string{"tfvars_files entries cannot be empty"},
		},
		{
			name:     "missing backend file",
			mutate:   func(c *Config) { c.BackendConfigFile = "missing.conf" },
			wantErrs: []string{"backend config file not found: missing.conf"},
		},
		{
			name:      "workspace with hyphen and underscore",
			mutate:    func(c *Config) { c.Workspace = "dev_east-1" },
			wantValid: true,
		},
		{
			name:     "workspace with shell metacharacters",
			mutate:   func(c *Config) { c.Workspace = "dev; rm -rf /" },
			wantErrs: []string{"Invalid workspace name: dev; rm -rf /"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			errs := Validate(cfg, fs)
			if tt.wantValid {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.wantErrs, errs)
		})
	}
}

func TestValidateDistinguishesStatFailureFromAbsence(t *testing.T) {
	fs := &fakeFS{
		dirs: map[string]bool{"env": true},
		fileErrs: map[string]error{
			"env/a.tfvars":     errors.New("permission denied"),
			"env/backend.conf": errors.New("permission denied"),
		},
		dirErrs: map[string]error{"locked": errors.New("permission denied")},
	}

	cfg := validConfig()
	cfg.TFVarsFiles = []string{"a.tfvars"}
	cfg.BackendConfigFile = "backend.conf"
	errs := Validate(cfg, fs)
	require.Equal(t, []string{
		"tfvars file not accessible: a.tfvars (permission denied)",
		"backend config file not accessible: backend.conf (permission denied)",
	}, errs)

	cfg = validConfig()
	cfg.TFDirectory = "locked"
	errs = Validate(cfg, fs)
	require.Equal(t, []string{"tf_directory not accessible: permission denied"}, errs)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	fs := &fakeFS{}
	cfg := &Config{
		TFDirectory: "",
		Command:     "bogus",
		Workspace:   "bad name",
		TFVarsFiles: []string{"missing.tfvars"},
	}

	errs := Validate(cfg, fs)

	require.Len(t, errs, 4)
	assert.Contains(t, errs, "tf_directory cannot be empty")
	assert.Contains(t, errs[1], "bogus")
	assert.Contains(t, errs, "tfvars file not found: missing.tfvars")
	assert.Contains(t, errs, "Invalid workspace name: bad name")
}
