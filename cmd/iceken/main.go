// Package main provides the iceken binary: a front-end over the kennitala
// package and the sample-dataset loader.
//
// Commands:
//
//	iceken validate <file.xml> [-out report.json]
//	    Decode a Þjóðskrá gervigögn Einstaklingar XML file, run every
//	    record through the validation pipeline, and write a JSON report.
//
//	iceken generate
//	    Emit synthetic kennitala per the configured entity type, count,
//	    checksum mode, format, and date range.
//
// Configuration comes from ICEKEN_-prefixed environment variables layered
// over defaults; see the config package.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vignirvignir/ice-ken/internal/config"
	"github.com/vignirvignir/ice-ken/internal/loader"
	"github.com/vignirvignir/ice-ken/kennitala"
)

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(2)
	}
	return cfg
}

func usage() string {
	return "usage: iceken <validate|generate> [args]"
}

func run(cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage())
	}
	switch args[0] {
	case "validate":
		return runValidate(cfg, args[1:], stdout)
	case "generate":
		return runGenerate(cfg, stdout)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage())
	}
}

func runValidate(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	out := fs.String("out", "", "write the JSON report to this path instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("validate expects exactly one XML file argument")
	}

	records, err := loader.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	report := loader.NewReport(loader.Validate(records))

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := loader.WriteJSON(w, report, cfg.Pretty); err != nil {
		return err
	}
	slog.Info("validated records", "file", fs.Arg(0), "count", report.Count, "run_id", report.RunID)
	return nil
}

func runGenerate(cfg *config.Config, stdout io.Writer) error {
	ids, err := generateIDs(cfg)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(stdout, id)
	}
	return nil
}

// generateIDs produces cfg.Count synthetic kennitala per the configured
// entity type and checksum policy.
func generateIDs(cfg *config.Config) ([]string, error) {
	g := kennitala.NewGenerator()
	opts := kennitala.GenOptions{
		Start:        cfg.GenStart,
		End:          cfg.GenEnd,
		Sequence:     cfg.Sequence,
		SkipChecksum: cfg.Relaxed,
		Raw:          cfg.Raw,
	}
	ids := make([]string, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		var (
			id  string
			err error
		)
		if cfg.Entity == "company" {
			id, err = g.Company(opts)
		} else {
			id, err = g.Personal(opts)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func main() {
	cfg := loadConfig()
	if err := run(cfg, os.Args[1:], os.Stdout); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}
