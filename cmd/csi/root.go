package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phyten/csi/internal/config"
	"github.com/phyten/csi/internal/engine"
	engineopts "github.com/phyten/csi/internal/engine/opts"
	"github.com/phyten/csi/internal/logger"
	"github.com/phyten/csi/internal/termcolor"
)

func newRootCmd(env termcolor.Env) *cobra.Command {
	f := &cliFlags{}
	cmd := &cobra.Command{
		Use:   "csi [flags] PATTERN FILE...",
		Short: "Search files for lines matching a regular expression",
		Long: `csi prints every line of the given files that matches PATTERN as
"<file>:<line>:<text>". Directories are searched with -r; --include and
--exclude filter the walked file names by regular expression.

Defaults can be set in .csi.yaml / .csi.toml / .csi.json or with CSI_*
environment variables. Command-line flags always win.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, f, env)
		},
	}
	f.bind(cmd.Flags())
	return cmd
}

func runSearch(cmd *cobra.Command, args []string, f *cliFlags, env termcolor.Env) error {
	fs := cmd.Flags()
	flagCfg := f.layer(fs)

	explicit := f.configPath
	if !fs.Changed("config") {
		explicit = env["CSI_CONFIG"]
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	path, where, err := config.Find(wd, explicit, env["XDG_CONFIG_HOME"], env["HOME"])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	envCfg, err := config.FromEnv(func(key string) string { return env[key] })
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	logSettings := config.MergeLog(config.DefaultLogSettings(), fileCfg.Log, envCfg.Log, flagCfg.Log)
	log, err := logger.Provide(logSettings, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if path != "" {
		log.Debug("config loaded", zap.String("path", path), zap.String("source", where))
	}

	settings, err := config.NormalizeEngine(config.MergeEngine(config.DefaultEngineSettings(), fileCfg.Engine, envCfg.Engine, flagCfg.Engine))
	if err != nil {
		return err
	}

	opts := engineopts.Defaults()
	opts.Pattern = args[0]
	opts.Paths = args[1:]
	settings.ApplyToOptions(&opts)
	opts.Logger = log

	out := cmd.OutOrStdout()
	mode, err := termcolor.ParseMode(settings.Color)
	if err != nil {
		return err
	}
	stdout, _ := out.(*os.File)
	opts.Colorize = termcolor.Resolve(mode, stdout, env)
	if opts.Colorize {
		opts.HighlightStyle = termcolor.MatchStyle(termcolor.DetectProfile(env), termcolor.DetectScheme(env))
	}

	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return err
	}

	bw := bufio.NewWriter(out)
	_, runErr := engine.Run(opts, bw)
	if err := bw.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("write output: %w", err)
	}
	return runErr
}
