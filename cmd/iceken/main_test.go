package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vignirvignir/ice-ken/internal/config"
	"github.com/vignirvignir/ice-ken/internal/loader"
	"github.com/vignirvignir/ice-ken/kennitala"
)

func testConfig() *config.Config {
	cfg := config.DefaultAppConfig
	return &cfg
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run(testConfig(), []string{"frobnicate"}, &buf); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if err := run(testConfig(), nil, &buf); err == nil {
		t.Fatal("expected error for missing command")
	}
}

func TestRunValidateWritesReport(t *testing.T) {
	fixture := filepath.Join("..", "..", "internal", "loader", "testdata", "einstaklingar.xml")
	var buf bytes.Buffer
	if err := run(testConfig(), []string{"validate", fixture}, &buf); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	var report loader.Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("report not valid JSON: %v", err)
	}
	if report.Count != 6 {
		t.Fatalf("report count = %d, want 6", report.Count)
	}
}

func TestRunValidateRequiresFileArg(t *testing.T) {
	var buf bytes.Buffer
	if err := run(testConfig(), []string{"validate"}, &buf); err == nil {
		t.Fatal("expected error for missing file argument")
	}
}

func TestGenerateIDs(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 5
	ids, err := generateIDs(cfg)
	if err != nil {
		t.Fatalf("generateIDs error: %v", err)
	}
	if len(ids) != 5 {
		t.Fatalf("got %d ids, want 5", len(ids))
	}
	for _, id := range ids {
		if !kennitala.IsValid(id) || !kennitala.IsPersonal(id) {
			t.Fatalf("generated id %q not a valid personal kennitala", id)
		}
	}
}

func TestGenerateIDsCompanyRelaxedRaw(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 3
	cfg.Entity = "company"
	cfg.Relaxed = true
	cfg.Raw = true
	cfg.GenStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	cfg.GenEnd = time.Date(2010, time.December, 31, 0, 0, 0, 0, time.UTC)

	ids, err := generateIDs(cfg)
	if err != nil {
		t.Fatalf("generateIDs error: %v", err)
	}
	for _, id := range ids {
		if strings.Contains(id, "-") {
			t.Fatalf("raw id %q contains hyphen", id)
		}
		if !kennitala.IsValidRelaxed(id) || kennitala.IsValid(id) {
			t.Fatalf("relaxed id %q has wrong validity", id)
		}
		if !kennitala.IsCompany(id) {
			t.Fatalf("id %q not company-encoded", id)
		}
	}
}

func TestRunGeneratePrintsLines(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 2
	var buf bytes.Buffer
	if err := run(cfg, []string{"generate"}, &buf); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}
