// Command mdp solves Max-Min Diversity Problem instances with GRASP and
// path relinking.
//
// Usage:
//
//	mdp -instance "GKD-c 01 n500.txt" -time 30s -seed 7
//	mdp -instance a.txt,b.txt -runs 10 -csv results/records.csv
//	mdp -instance a.txt -calibrate -runs 20 -csv results/alpha.csv
//
// With -runs 1 and no report file the best solution is printed. With more
// runs, -calibrate, -csv or -summary-csv, one record per (instance, method)
// is logged and optionally written to -csv; the comparison summary goes to
// -summary-csv.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mmdp/construct"
	"github.com/katalvlaran/mmdp/experiment"
	"github.com/katalvlaran/mmdp/grasp"
	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/localsearch"
	"github.com/katalvlaran/mmdp/randutil"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "mdp:", err)
		os.Exit(1)
	}
}

type config struct {
	instances     string
	p             int
	alpha         float64
	elite         int
	timeLimit     time.Duration
	graspFraction float64
	seed          int64
	safetyMargin  bool
	constructor   string
	improver      string
	improveIters  int
	runs          int
	calibrate     bool
	csvPath       string
	summaryPath   string
	verbose       bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		cfg  config
		def  = grasp.DefaultOptions()
		flgs = flag.NewFlagSet("mdp", flag.ContinueOnError)
	)
	flgs.SetOutput(stderr)
	flgs.StringVar(&cfg.instances, "instance", "", "instance file(s), comma-separated")
	flgs.IntVar(&cfg.p, "p", 0, "items to select (0 = infer from the file name)")
	flgs.Float64Var(&cfg.alpha, "alpha", def.Alpha, "construction parameter (CGR alpha / CGR2 beta; negative = random per construction)")
	flgs.IntVar(&cfg.elite, "elite", def.EliteSize, "elite set capacity")
	flgs.DurationVar(&cfg.timeLimit, "time", def.TimeLimit, "time limit per run")
	flgs.Float64Var(&cfg.graspFraction, "grasp-fraction", def.GraspFraction, "share of the time limit spent constructing")
	flgs.Int64Var(&cfg.seed, "seed", randutil.DefaultSeed, "base random seed")
	flgs.BoolVar(&cfg.safetyMargin, "safety-margin", def.SafetyMargin, "stop constructing one second before the time limit")
	flgs.StringVar(&cfg.constructor, "construct", "cgr", "constructive method: cgr | cgr2")
	flgs.StringVar(&cfg.improver, "improve", "first", "local search: first | best | imls")
	flgs.IntVar(&cfg.improveIters, "improve-iters", 0, "local search round bound (0 = method default)")
	flgs.IntVar(&cfg.runs, "runs", 1, "independent runs per instance")
	flgs.BoolVar(&cfg.calibrate, "calibrate", false, "calibrate CGR alpha over 0.1..0.9 instead of running GRASP+PR")
	flgs.StringVar(&cfg.csvPath, "csv", "", "write per-instance records to this CSV file")
	flgs.StringVar(&cfg.summaryPath, "summary-csv", "", "write the method comparison summary to this CSV file")
	flgs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := flgs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.instances == "" {
		return cfg, fmt.Errorf("-instance is required")
	}

	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	insts, err := loadInstances(cfg.instances, cfg.p)
	if err != nil {
		return err
	}
	c, err := construct.ParseMethod(cfg.constructor)
	if err != nil {
		return err
	}
	m, err := localsearch.ParseMethod(cfg.improver)
	if err != nil {
		return err
	}

	opts := grasp.DefaultOptions()
	opts.Alpha = cfg.alpha
	opts.EliteSize = cfg.elite
	opts.TimeLimit = cfg.timeLimit
	opts.GraspFraction = cfg.graspFraction
	opts.SafetyMargin = cfg.safetyMargin
	opts.Constructor = c
	opts.Improver = m
	opts.ImproveIters = cfg.improveIters
	opts.Seed = cfg.seed
	opts.Logger = log
	if err = opts.Validate(); err != nil {
		return err
	}

	// A single plain run prints the best selection; any report goes
	// through the runner.
	if cfg.runs == 1 && !cfg.calibrate && cfg.csvPath == "" && cfg.summaryPath == "" {
		for _, inst := range insts {
			res, err := grasp.Run(inst, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", inst, err)
			}
			fmt.Fprintf(stdout, "%s\t%g\t%v\t%d iterations\t%s\n",
				inst, res.Best.Objective(), res.Best.Items(), res.Iterations, res.Elapsed.Round(time.Millisecond))
		}
		return nil
	}

	runner := experiment.Runner{Runs: cfg.runs, BaseSeed: cfg.seed, Logger: log}
	var records []experiment.Record
	if cfg.calibrate {
		records, err = runner.Calibrate(ctx, insts, experiment.DefaultAlphas(), cfg.improveIters)
	} else {
		opts.Logger = log.Level(zerolog.WarnLevel)
		name := fmt.Sprintf("grasp-pr(%s+%s)", c, m)
		records, err = runner.Run(ctx, insts, []experiment.Method{experiment.GRASP(name, opts)})
	}
	if err != nil {
		return err
	}

	summary := experiment.Summarize(records)
	for _, s := range summary {
		log.Info().
			Str("method", s.Method).
			Int("instances", s.Instances).
			Float64("dev_avg_pct", s.DevAvg).
			Int("num_best", s.NumBest).
			Float64("score", s.Score).
			Msg("summary")
	}
	if cfg.csvPath != "" {
		if err = experiment.SaveCSV(cfg.csvPath, func(w io.Writer) error {
			return experiment.WriteRecordsCSV(w, records)
		}); err != nil {
			return err
		}
	}
	if cfg.summaryPath != "" {
		if err = experiment.SaveCSV(cfg.summaryPath, func(w io.Writer) error {
			return experiment.WriteSummaryCSV(w, summary)
		}); err != nil {
			return err
		}
	}

	return nil
}

func loadInstances(list string, p int) ([]*instance.Instance, error) {
	var out []*instance.Instance
	for _, path := range strings.Split(list, ",") {
		if path = strings.TrimSpace(path); path == "" {
			continue
		}
		inst, err := instance.ReadFile(path, p)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}

	return out, nil
}
