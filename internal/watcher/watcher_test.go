package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cmedimport/internal/config"
	"cmedimport/internal/storage"
)

func TestRunCycleImportsAndMoves(t *testing.T) {
	tmp := t.TempDir()
	cfg, _ := config.Load()
	cfg.DBPath = filepath.Join(tmp, "cmed.db")
	cfg.InboxDir = filepath.Join(tmp, "inbox")
	cfg.OutputDir = filepath.Join(tmp, "out")
	cfg.WatcherBatch = 5
	cfg.WatcherAutoExport = true

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.InboxDir, 0o755); err != nil {
		t.Fatal(err)
	}
	csvBlob := strings.Join([]string{
		"LISTA DE PREÇOS - 01/03/2026",
		"SUBSTÂNCIA;CÓDIGO GGREM;PRODUTO;PF 18 %",
		"DIPIRONA;123456;NOVALGINA;12,50",
	}, "\n")
	dropped := filepath.Join(cfg.InboxDir, "cmed_202603.csv")
	if err := os.WriteFile(dropped, []byte(csvBlob), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(db, cfg)
	if err := svc.runCycle(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(dropped); !os.IsNotExist(err) {
		t.Fatal("imported file still in inbox")
	}
	moved := filepath.Join(cfg.InboxDir, "done", "cmed_202603.csv")
	if _, err := os.Stat(moved); err != nil {
		t.Fatalf("file not moved to done/: %v", err)
	}

	rec, err := db.GetMedication("123456")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.Produto != "NOVALGINA" {
		t.Fatalf("medication not stored: %+v", rec)
	}

	runs, err := db.ListImports(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Parsed != 1 {
		t.Fatalf("runs=%+v", runs)
	}

	reports, err := filepath.Glob(filepath.Join(cfg.OutputDir, "watcher", "*.xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports=%v", reports)
	}
}

func TestRunCycleIgnoresOtherFiles(t *testing.T) {
	tmp := t.TempDir()
	cfg, _ := config.Load()
	cfg.DBPath = filepath.Join(tmp, "cmed.db")
	cfg.InboxDir = filepath.Join(tmp, "inbox")
	cfg.OutputDir = filepath.Join(tmp, "out")

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.InboxDir, 0o755); err != nil {
		t.Fatal(err)
	}
	ignored := filepath.Join(cfg.InboxDir, "notas.pdf")
	if err := os.WriteFile(ignored, []byte("%PDF-"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(db, cfg)
	if err := svc.runCycle(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(ignored); err != nil {
		t.Fatalf("non-spreadsheet file should stay put: %v", err)
	}
}
