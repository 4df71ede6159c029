package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-oedometer/devlog"
	"github.com/cwbudde/algo-oedometer/measure/consolidation"
)

func runProcess(args []string) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	cf := setupConfigFlags(fs)
	pressure := fs.Float64("pressure", 0, "stage pressure in kPa (default: from the log header)")
	interp := fs.String("interp", "", "interpolation: hermite or poly (overrides the configuration)")
	param := fs.Float64("param", 0, "interpolation parameter (overrides the configuration)")
	left := fs.Int("left", 0, "first sample of the processing window")
	right := fs.Int("right", 0, "end of the processing window, exclusive (0 = all samples)")
	results := fs.String("results", "", "write data and results of the last log to this .xlsx file")
	verbose := fs.Bool("v", false, "log engine diagnostics")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: oedo process [flags] log.csv|log.xlsx ...\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	cfg := cf.load()
	if *interp != "" {
		cfg.Engine.Interpolation = *interp
	}
	if visited(fs, "param") {
		cfg.Engine.Param = *param
	}
	cf.save(cfg)

	var (
		last    devlog.Log
		lastRes consolidation.Result
	)
	for _, path := range fs.Args() {
		l, err := readLog(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}

		press := *pressure
		if press <= 0 {
			press = l.Header.Press
		}
		opts, err := cfg.EngineOptions(press)
		if err != nil {
			log.Fatal(err)
		}
		if s := l.Header.Sample(); s.Height > 0 && s.Diameter > 0 {
			opts = append(opts, consolidation.WithSample(s))
		}
		if *verbose {
			opts = append(opts, consolidation.WithLogger(log.Default()))
		}
		e, err := consolidation.New(opts...)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}

		if err := e.SetData(l.Series()); err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		r := *right
		if r == 0 {
			r = len(l.Time)
		}
		if err := e.ChangeBorders(*left, r); err != nil {
			log.Fatalf("%s: %v", path, err)
		}

		res := e.Results()
		printResults(path, res)
		last, lastRes = l, res
	}

	if *results != "" {
		if err := writeResults(*results, last, lastRes); err != nil {
			log.Fatal(err)
		}
		log.Printf("results written to %s", *results)
	}
}

func readLog(path string) (devlog.Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return devlog.Log{}, err
	}
	defer f.Close()
	if isXLSX(path) {
		return devlog.ReadXLSX(f)
	}
	return devlog.ReadCSV(f)
}

func printResults(name string, res consolidation.Result) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "%s\n", name)
	for _, f := range res.Fields() {
		if v, ok := f.Value.Get(); ok {
			_, _ = fmt.Fprintf(tw, "  %s\t%.6g\n", f.Name, v)
		} else {
			_, _ = fmt.Fprintf(tw, "  %s\t%s\n", f.Name, f.Value)
		}
	}
	if err := tw.Flush(); err != nil {
		log.Fatalf("flush output: %v", err)
	}
}

func writeResults(path string, l devlog.Log, res consolidation.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return devlog.WriteXLSX(f, l, &res)
}
