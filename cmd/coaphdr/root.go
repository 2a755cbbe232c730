package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/coaphdr/internal/cli/output"
	"github.com/danmuck/coaphdr/internal/config"
	"github.com/danmuck/coaphdr/internal/logging"
	"github.com/danmuck/coaphdr/internal/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app is the state shared by subcommands once flags and config resolve.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	format     string
	logLevel   string
	noColor    bool

	cfg     config.Config
	logger  zerolog.Logger
	printer *output.Printer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "coaphdr",
		Short:         "Decode and encode fixed 4-byte CoAP message headers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a TOML config file")
	flags.StringVarP(&a.format, "format", "o", "", "output format: text, table, json, yaml")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newCodesCmd(a),
		newDemoCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the command tree and reports a failure on errOut.
func execute(root *cobra.Command, errOut io.Writer) error {
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(errOut, "coaphdr: %v\n", err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = strings.TrimSpace(a.format)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = strings.TrimSpace(a.logLevel)
	}
	if flags.Changed("no-color") && a.noColor {
		cfg.Output.Color = false
		cfg.Log.NoColor = true
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logCfg := cfg.LoggingConfig()
	logging.ApplyEnvOverrides(&logCfg)
	if flags.Changed("log-level") {
		logCfg.Level, _ = logging.ParseLevel(cfg.Log.Level)
	}
	a.logger = observability.InitLogger(a.errOut, "coaphdr", logCfg)

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	a.printer = output.NewPrinter(a.out, format, cfg.Output.Color)
	a.cfg = cfg
	return nil
}
