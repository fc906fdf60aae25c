package cmedparser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"cmedimport/internal"
)

// Parsing throughput used for the time estimate, rows per second. Rough on
// purpose; the report is shown to a person deciding whether to wait.
const estimatedRowsPerSecond = 4000.0

// ValidateFile is the cheap pre-check: detects the format and estimates the
// row count and processing time without running the full import.
func ValidateFile(path string) (internal.ValidationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return internal.ValidationReport{}, fmt.Errorf("ler arquivo %s: %w", path, err)
	}
	return ValidateBytes(filepath.Base(path), data), nil
}

func ValidateBytes(name string, data []byte) internal.ValidationReport {
	if len(data) == 0 {
		return internal.ValidationReport{Valid: false, Reason: "Arquivo vazio"}
	}

	format := DetectFormat(name, data)
	report := internal.ValidationReport{Format: string(format)}

	switch format {
	case FormatXLSX:
		rows, err := readWorkbookRows(data)
		if err != nil {
			report.Reason = "Planilha inválida: " + err.Error()
			return report
		}
		report.EstimatedRows = len(rows)
	case FormatCSV:
		report.EstimatedRows = bytes.Count(data, []byte{'\n'}) + 1
	}

	report.Valid = report.EstimatedRows > 0
	report.EstimatedSeconds = float64(report.EstimatedRows) / estimatedRowsPerSecond
	return report
}
