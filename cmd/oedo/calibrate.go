package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/cwbudde/algo-oedometer/stats/recovery"
)

func runCalibrate(args []string) {
	fs := flag.NewFlagSet("calibrate", flag.ExitOnError)
	cf := setupConfigFlags(fs)
	seeds := fs.Int("seeds", 0, "seeds per parameter set (overrides the configuration)")
	strict := fs.Bool("strict", false, "exit with status 1 when a quantity exceeds its tolerance")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: oedo calibrate [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	cfg := cf.load()
	if *seeds > 0 {
		cfg.Calibrate.Seeds = *seeds
	}
	cf.save(cfg)

	rc, err := cfg.RecoveryConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tr, err := recovery.Calibrate(ctx, rc)
	if err != nil {
		log.Printf("calibration stopped: %v", err)
		if tr == nil {
			os.Exit(1)
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Quantity\tN\tMissing\tMean\tStdDev\tMin\tMax\tP50\tP90\tP99\tTol\tOK\n")
	_, _ = fmt.Fprintf(tw, "--------\t-\t-------\t----\t------\t---\t---\t---\t---\t---\t---\t--\n")
	failed := false
	for _, s := range tr.Summaries() {
		tol := cfg.Calibrate.Tolerance.Cv
		if s.Name == recovery.CaLog {
			tol = cfg.Calibrate.Tolerance.Ca
		}
		ok := s.Within(tol)
		failed = failed || !ok
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%+.4f\t%.4f\t%+.4f\t%+.4f\t%.4f\t%.4f\t%.4f\t%.2f\t%v\n",
			s.Name, s.Count, s.Missing, s.Mean, s.StdDev, s.Min, s.Max, s.P50, s.P90, s.P99, tol, ok)
	}
	if err := tw.Flush(); err != nil {
		log.Fatalf("flush output: %v", err)
	}
	if *strict && (failed || err != nil) {
		os.Exit(1)
	}
}
