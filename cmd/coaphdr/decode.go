package main

import (
	"fmt"
	"os"

	"github.com/danmuck/coaphdr/internal/cli/output"
	"github.com/danmuck/coaphdr/internal/inspect"
	"github.com/danmuck/coaphdr/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		file        string
		stopOnError bool
		textfile    string
	)
	cmd := &cobra.Command{
		Use:   "decode [HEADER...]",
		Short: "Decode headers given as arguments, stdin lines, or a binary file",
		Long: `Decode one or more 4-byte headers.

Each HEADER may be contiguous hex (40010001, 0x40010001), spaced hex
bytes ("40 01 00 01") or a decimal list (64,1,0,1 or "[64, 1, 0, 1]").
With no arguments, headers are read one per line from stdin. With
--file, the file is read as back-to-back binary headers.`,
		Example: `  coaphdr decode 40010001 "[96, 95, 0, 1]"
  coaphdr decode --file capture.bin -o table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("stop-on-error") {
				a.cfg.Decode.StopOnError = stopOnError
			}
			if cmd.Flags().Changed("metrics-textfile") {
				a.cfg.Metrics.Enabled = true
				a.cfg.Metrics.Textfile = textfile
			}
			return a.runDecode(args, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "binary file of back-to-back headers")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "stop at the first input that fails to decode")
	cmd.Flags().StringVar(&textfile, "metrics-textfile", "", "write prometheus decode counters to this file")
	return cmd
}

func (a *app) runDecode(args []string, file string) error {
	if file != "" && len(args) > 0 {
		return fmt.Errorf("decode: --file and header arguments are mutually exclusive")
	}

	var (
		reg     *prometheus.Registry
		metrics *observability.Metrics
	)
	if a.cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		m, err := observability.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("decode: register metrics: %w", err)
		}
		metrics = m
	}

	insp := inspect.New(a.logger, metrics)
	var report inspect.Report
	collect := func(res inspect.Result) bool {
		report.Add(res)
		return res.OK() || !a.cfg.Decode.StopOnError
	}

	switch {
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		defer f.Close()
		if err := insp.InspectStream(f, collect); err != nil {
			return err
		}
	case len(args) > 0:
		for _, arg := range args {
			if !collect(insp.Inspect(arg)) {
				break
			}
		}
	default:
		if err := insp.InspectLines(a.in, collect); err != nil {
			return err
		}
	}

	if err := a.printReport(&report); err != nil {
		return err
	}

	if reg != nil && a.cfg.Metrics.Textfile != "" {
		if err := observability.WriteTextfile(a.cfg.Metrics.Textfile, reg); err != nil {
			return fmt.Errorf("decode: write metrics: %w", err)
		}
		a.logger.Info().Str("path", a.cfg.Metrics.Textfile).Msg("metrics written")
	}

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d headers failed to decode", failed, len(report.Results))
	}
	return nil
}

func (a *app) printReport(report *inspect.Report) error {
	switch a.printer.Format() {
	case output.FormatText:
		for i, res := range report.Results {
			if i > 0 {
				a.printer.Println()
			}
			if !res.OK() {
				a.printer.Error(fmt.Sprintf("%s: %v", res.Input, res.Err))
				continue
			}
			a.printer.Printf("%s:\n%s\n", res.Input, res.Header)
		}
		return nil
	case output.FormatTable:
		return a.printer.Print(report)
	default:
		return a.printer.Print(report.Views())
	}
}
