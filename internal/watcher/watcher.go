// Package watcher is the unattended import loop: it polls an inbox
// directory for dropped CMED files, imports each into the catalog, writes
// the XLSX report and moves the file to done/ or failed/.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cmedimport/internal/cmedparser"
	"cmedimport/internal/config"
	"cmedimport/internal/export"
	"cmedimport/internal/storage"
)

type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("watcher cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatcherIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	if err := os.MkdirAll(s.cfg.InboxDir, 0o755); err != nil {
		return err
	}

	candidates, err := s.listCandidates()
	if err != nil {
		return err
	}

	imported := 0
	failed := 0
	for _, path := range candidates {
		if imported >= s.cfg.WatcherBatch {
			break
		}
		if err := s.importOne(path); err != nil {
			fmt.Printf("watcher import error file=%s: %v\n", filepath.Base(path), err)
			_ = s.moveTo(path, "failed")
			failed++
			continue
		}
		imported++
	}

	if len(candidates) > 0 {
		fmt.Printf("watcher cycle done found=%d imported=%d failed=%d\n", len(candidates), imported, failed)
	}
	return nil
}

func (s *Service) listCandidates() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.InboxDir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".xlsx", ".xls", ".csv", ".txt":
			out = append(out, filepath.Join(s.cfg.InboxDir, entry.Name()))
		}
	}
	return out, nil
}

func (s *Service) importOne(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	format := cmedparser.DetectFormat(name, data)
	res := cmedparser.ParseBytes(name, data)

	importID, err := s.db.RecordImport(name, string(format), res)
	if err != nil {
		return err
	}

	if s.cfg.WatcherAutoExport {
		reportName := fmt.Sprintf("import_%d_%s.xlsx", importID, strings.TrimSuffix(name, filepath.Ext(name)))
		reportPath := filepath.Join(s.cfg.OutputDir, "watcher", reportName)
		if err := export.WriteReport(res, reportPath); err != nil {
			return err
		}
	}

	fmt.Printf("imported file=%s importId=%d total=%d parsed=%d errors=%d\n",
		name, importID, res.Stats.Total, res.Stats.Parsed, res.Stats.Errors)
	return s.moveTo(path, "done")
}

func (s *Service) moveTo(path, subdir string) error {
	destDir := filepath.Join(s.cfg.InboxDir, subdir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}
	return os.Rename(path, filepath.Join(destDir, filepath.Base(path)))
}
