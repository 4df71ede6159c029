// Command oedo generates, processes and calibrates oedometer consolidation
// stages.
//
// Usage:
//
//	oedo generate [flags]
//	oedo process [flags] log.csv|log.xlsx ...
//	oedo calibrate [flags]
//
// Every subcommand accepts -config with a YAML file; without it the
// built-in defaults are used. -write-config saves the effective
// configuration.
//
// Examples:
//
//	oedo generate -o stage.csv
//	oedo generate -config lab.yaml -seed 3 -o stage.xlsx
//	oedo process -results out.xlsx stage.csv
//	oedo calibrate -seeds 20
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-oedometer/internal/config"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("oedo: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	args := os.Args[2:]
	switch os.Args[1] {
	case "generate":
		runGenerate(args)
	case "process":
		runProcess(args)
	case "calibrate":
		runCalibrate(args)
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: oedo <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  generate   write a synthetic consolidation stage as a device log\n")
	fmt.Fprintf(os.Stderr, "  process    run the sqrt-time and log-time methods on device logs\n")
	fmt.Fprintf(os.Stderr, "  calibrate  measure parameter recovery over synthetic stages\n")
	fmt.Fprintf(os.Stderr, "\nRun 'oedo <command> -h' for the flags of a command.\n")
}

// configFlags are shared by every subcommand.
type configFlags struct {
	path  *string
	write *string
}

func setupConfigFlags(fs *flag.FlagSet) configFlags {
	return configFlags{
		path:  fs.String("config", "", "YAML configuration file"),
		write: fs.String("write-config", "", "save the effective configuration to this YAML file"),
	}
}

// load returns the configuration named by -config, or the defaults.
func (f configFlags) load() *config.Config {
	if *f.path == "" {
		return config.Default()
	}
	cfg, err := config.Load(*f.path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

// save writes cfg when -write-config is set. Flag overrides are applied
// before, so the file reproduces the run.
func (f configFlags) save(cfg *config.Config) {
	if *f.write == "" {
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Save(*f.write); err != nil {
		log.Fatalf("write config: %v", err)
	}
	log.Printf("configuration saved to %s", *f.write)
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// visited reports whether the named flag was set on the command line.
func visited(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
