package main

import (
	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-qed/internal/config"
	"github.com/jamesainslie/go-qed/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}

	root := &cobra.Command{
		Use:   "qed-eval",
		Short: "Score QED explanation predictions against annotations",
		Long: "qed-eval compares predicted QED explanations (question/context mention\n" +
			"alignments and answer spans) with annotations and reports precision,\n" +
			"recall and F1 for mentions and pairs plus answer accuracy.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&rf.configPath, "config", "", "Path to YAML config file")
	f.StringVar(&rf.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&rf.logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(newScoreCmd(rf))
	root.AddCommand(newSweepCmd(rf))
	root.AddCommand(newValidateCmd(rf))
	return root
}

// resolve builds the effective config: defaults, then the config file, then
// flags set on the command line. apply copies command-specific flags. The
// global logger is configured from the result.
func (rf *rootFlags) resolve(cmd *cobra.Command, apply func(*config.Config)) (config.Config, error) {
	cfg := config.Default()
	if rf.configPath != "" {
		var err error
		if cfg, err = config.Load(rf.configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = rf.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = rf.logFormat
	}
	if apply != nil {
		apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if _, err := logging.Init(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
