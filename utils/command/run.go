package command

import (
	"os"

	log "github.com/charmbracelet/log"

	"github.com/Action-Foundry/AVM-Action/config"
	"github.com/Action-Foundry/AVM-Action/utils/github"
	"github.com/Action-Foundry/AVM-Action/utils/terraform"
)

// Run drives one invocation end to end and returns the process exit code:
// load config -> validate -> resolve auth -> resolve variables -> workspace
// pre-step -> build -> run -> report. No state is revisited; the only retry
// in the whole sequence is the workspace create-on-missing step inside
// EnsureWorkspace.
func Run(cfg *config.Config, utils Utils) int {
	configureLogging(cfg.LogLevel)
	log.Info("starting terraform run", "command", cfg.Command, "directory", cfg.TFDirectory, "workspace", cfg.Workspace)

	if diags := config.Validate(cfg, utils.GetFileUtils()); len(diags) > 0 {
		for _, msg := range diags {
			github.Error(msg)
			log.Error("configuration error", "error", msg)
		}
		cfgErr := &config.ConfigurationError{Diagnostics: diags}
		log.Error("aborting", "error", cfgErr)
		return 1
	}

	ctx := utils.GetContext()

	plan, err := utils.GetAuthResolver().Resolve(ctx, cfg.Azure)
	if err != nil {
		github.Error(err.Error())
		log.Error("authentication resolution failed", "error", err)
		return 1
	}
	log.Info("resolved authentication", "method", plan.Method)

	varPairs, problems := config.ResolveVarOverrides(cfg.VarOverrides)
	if len(problems) > 0 {
		for _, msg := range problems {
			github.Error(msg)
			log.Error("variable override error", "error", msg)
		}
		return 1
	}
	log.Debug("resolved variable overrides", "count", len(varPairs))

	runner := utils.NewTerraformRunner(cfg.TFDirectory, plan.Env)

	if cfg.Command != config.CommandInit {
		if err := runner.EnsureWorkspace(ctx, cfg.Workspace); err != nil {
			github.Error(err.Error())
			log.Error("workspace selection failed", "error", err)
			return 1
		}
	}

	args, err := terraform.BuildArgs(cfg.Command, cfg, config.VarFileFlags(cfg.TFVarsFiles), varPairs.Flags())
	if err != nil {
		github.Error(err.Error())
		log.Error("command construction failed", "error", err)
		return 1
	}

	result := runner.Run(ctx, args)
	report(result)

	if !result.Succeeded() {
		execErr := &terraform.ExecutionError{Result: result}
		log.Error("terraform command failed", "error", execErr, "exit_code", result.ExitCode)
		if result.Stderr != "" {
			github.Error(result.Stderr)
		} else {
			github.Error(execErr.Error())
		}
		if result.ExitCode < 0 {
			return 1
		}
		return result.ExitCode
	}

	log.Info("terraform run completed", "duration", result.Duration)
	return 0
}

// report surfaces the two named outputs to the invoking workflow.
func report(result *terraform.ExecutionResult) {
	if err := github.Output("plan_output", result.Stdout); err != nil {
		log.Warn("failed to write plan_output", "error", err)
	}
	if err := github.Output("state_summary", terraform.ParseStateSummary(result.Stdout)); err != nil {
		log.Warn("failed to write state_summary", "error", err)
	}
}

func configureLogging(level config.LogLevel) {
	// diagnostics go to stderr so captured terraform stdout stays clean
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)

	switch level {
	case config.LogLevelDebug:
		log.SetLevel(log.DebugLevel)
	case config.LogLevelWarning:
		log.SetLevel(log.WarnLevel)
	case config.LogLevelError:
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
