package cmedparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"cmedimport/internal"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DetectFormat decides how to read the input: extension first, then the
// ZIP/OOXML magic number when the extension says nothing, else delimited
// text. The files are downloaded by end users and extensions are not
// always reliable.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return FormatXLSX
	case ".csv", ".txt":
		return FormatCSV
	}
	if len(data) >= 4 && bytes.Equal(data[:4], zipMagic) {
		return FormatXLSX
	}
	return FormatCSV
}

// ParseFile reads and imports one CMED file. Only the read itself can
// return a Go error; everything after that is reported inside the result.
func ParseFile(path string) (internal.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return internal.ImportResult{}, fmt.Errorf("ler arquivo %s: %w", path, err)
	}
	return ParseBytes(filepath.Base(path), data), nil
}

// ParseBytes dispatches on the detected format and runs the import.
func ParseBytes(name string, data []byte) internal.ImportResult {
	if len(data) == 0 {
		return structuralResult("Arquivo vazio")
	}

	var rows [][]string
	switch DetectFormat(name, data) {
	case FormatXLSX:
		var err error
		rows, err = readWorkbookRows(data)
		if err != nil {
			return structuralResult("Planilha inválida: " + err.Error())
		}
	case FormatCSV:
		rows = readDelimitedRows(data)
	}
	return ParseTable(rows)
}

// readWorkbookRows materializes the first sheet as a text grid. Empty-cell
// padding inside a row is preserved by excelize; short rows are handled by
// the per-cell bounds check in the parser.
func readWorkbookRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("planilha sem abas")
	}
	return f.GetRows(sheet)
}

// readDelimitedRows splits ;-delimited text into the same grid shape. The
// government CSV exports are sometimes ISO-8859-1 rather than UTF-8, so
// non-UTF-8 input is transcoded first.
func readDelimitedRows(data []byte) [][]string {
	if !utf8.Valid(data) {
		decoded, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(data)))
		if err == nil {
			data = decoded
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line: keep what was readable so far.
			continue
		}
		rows = append(rows, record)
	}
	return rows
}
