package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cwbudde/algo-oedometer/devlog"
	"github.com/cwbudde/algo-oedometer/synth"
)

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cf := setupConfigFlags(fs)
	out := fs.String("o", "", "output log, .xlsx or .csv (default: CSV on stdout)")
	seed := fs.Int64("seed", 0, "random seed (overrides the configuration)")
	maxTime := fs.Float64("max-time", 0, "stage duration in minutes, 0 = automatic")
	start := fs.String("start", "", "wall-clock start, "+devlog.DateTimeLayout+" (default: now)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: oedo generate [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	cfg := cf.load()
	if visited(fs, "seed") {
		cfg.Generator.Seed = *seed
	}
	if visited(fs, "max-time") {
		cfg.Specimen.MaxTime = *maxTime
	}
	cf.save(cfg)

	begin := time.Now().Truncate(time.Second)
	if *start != "" {
		t, err := time.ParseInLocation(devlog.DateTimeLayout, *start, time.Local)
		if err != nil {
			log.Fatalf("parse -start: %v", err)
		}
		begin = t
	}

	p, err := cfg.SynthParams()
	if err != nil {
		log.Fatal(err)
	}
	c, err := synth.Consolidation(p, cfg.SynthOptions()...)
	if err != nil {
		log.Fatal(err)
	}
	if c.CaCorrected {
		log.Printf("Ca reduced to %g to keep the creep branch above the final strain", c.Params.Ca)
	}
	for _, m := range c.Markers {
		log.Printf("%-9s t=%10.4f min  strain=%.6f", m.Name, m.Time, m.Strain)
	}

	l := devlog.Log{
		Header: devlog.Header{
			SampleHeight:   cfg.Sample.HeightMM,
			SampleDiameter: cfg.Sample.DiameterMM,
			Press:          cfg.Specimen.PMax,
		},
		Start:  begin,
		Time:   c.Time,
		Strain: c.Strain,
	}

	if *out == "" {
		if err := devlog.WriteCSV(os.Stdout, l); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := writeLog(*out, l); err != nil {
		log.Fatal(err)
	}
	log.Printf("%d samples written to %s", len(l.Time), *out)
}

func writeLog(path string, l devlog.Log) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if isXLSX(path) {
		return devlog.WriteXLSX(f, l, nil)
	}
	return devlog.WriteCSV(f, l)
}
