// Package cmedparser turns a CMED price-table export (XLSX or ;-delimited
// text) into normalized records. The published file carries an arbitrary
// free-text preamble before the real header, Brazilian-locale numbers and
// Portuguese yes/no flags; none of that is contractually stable, so the
// parser is heuristic and collects row-level problems instead of aborting.
package cmedparser

import (
	"strings"

	"cmedimport/internal"
	"cmedimport/internal/util"
)

// ParseTable runs the import over an in-memory grid of text cells.
// Structural failures (no rows, no header) yield a single error at row 0
// and no partial output; row-level failures are collected and never stop
// the remaining rows.
func ParseTable(rows [][]string) internal.ImportResult {
	if len(rows) == 0 {
		return structuralResult("Planilha vazia")
	}

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return structuralResult("Cabeçalho da tabela CMED não encontrado")
	}

	refDate := extractReferenceDate(rows[:headerIdx])
	index := buildColumnIndex(rows[headerIdx])

	var out []internal.ParsedRecord
	var errs []internal.ImportError
	for i := headerIdx + 1; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}
		record, rowErr := parseRow(rows[i], index, i+1)
		if rowErr != nil {
			errs = append(errs, *rowErr)
			continue
		}
		out = append(out, *record)
	}

	return internal.ImportResult{
		Success:       len(errs) == 0,
		Rows:          out,
		ReferenceDate: refDate,
		Errors:        errs,
		Stats: internal.ImportStats{
			Total:  len(out) + len(errs),
			Parsed: len(out),
			Errors: len(errs),
		},
	}
}

// findHeaderRow checks only the first cell of each row against the
// sentinel, first match wins. A data value that happens to equal the
// sentinel before the true header would mislead this; the source format
// does not guard against it and neither do we.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(row[0])) == headerSentinel {
			return i
		}
	}
	return -1
}

// buildColumnIndex maps header names to column positions. Matching is
// case- and whitespace-sensitive; a duplicated header name shadows the
// earlier column, an accepted ambiguity of the source format.
func buildColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	return index
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow builds one record; rowNum is 1-based against the original
// document, preamble and header included. A panic while deriving fields is
// converted into a row error so one malformed row never takes down the
// rest of the file.
func parseRow(row []string, index map[string]int, rowNum int) (record *internal.ParsedRecord, rowErr *internal.ImportError) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			failure := internal.RowParseFailure(rowNum, r)
			rowErr = &failure
		}
	}()

	cell := func(name string) string {
		idx, ok := index[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	prices := make(internal.PriceMap, len(priceColumns))
	for _, binding := range priceColumns {
		prices[binding.Field] = util.ParseDecimal(cell(binding.Source))
	}

	rec := internal.ParsedRecord{
		Substancia:        rewriteSubstance(strings.TrimSpace(cell(colSubstancia))),
		CNPJ:              strings.TrimSpace(cell(colCNPJ)),
		Laboratorio:       strings.TrimSpace(cell(colLaboratorio)),
		CodigoGGREM:       strings.TrimSpace(cell(colCodigoGGREM)),
		Registro:          strings.TrimSpace(cell(colRegistro)),
		EAN1:              util.CleanEAN(cell(colEAN1)),
		EAN2:              util.CleanEAN(cell(colEAN2)),
		EAN3:              util.CleanEAN(cell(colEAN3)),
		Produto:           strings.TrimSpace(cell(colProduto)),
		Apresentacao:      strings.TrimSpace(cell(colApresentacao)),
		ClasseTerapeutica: strings.TrimSpace(cell(colClasse)),
		TipoProduto:       strings.TrimSpace(cell(colTipoProduto)),
		RegimePreco:       strings.TrimSpace(cell(colRegimePreco)),

		Precos: prices,

		RestricaoHospitalar: util.ParseBoolean(cell(colRestricaoHosp)),
		CAP:                 util.ParseBoolean(cell(colCAP)),
		Confaz87:            util.ParseBoolean(cell(colConfaz87)),
		ICMSZero:            util.ParseBoolean(cell(colICMS0)),
		AnaliseRecursal:     util.ParseBoolean(cell(colAnaliseRecursal)),
		ListaConcessao:      util.ParseBoolean(cell(colListaConcessao)),

		Tarja:           optionalText(cell(colTarja)),
		Comercializacao: optionalText(cell(colComercializacao)),
	}

	if rec.CodigoGGREM == "" {
		missing := internal.MissingRegistrationCode(rowNum, rec.Produto)
		return nil, &missing
	}
	return &rec, nil
}

// rewriteSubstance turns the source's packed combination-drug notation
// ("PARACETAMOL;CODEÍNA") into the "A + B" form the catalog uses.
func rewriteSubstance(s string) string {
	if !strings.Contains(s, ";") {
		return s
	}
	parts := strings.Split(s, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, " + ")
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func structuralResult(reason string) internal.ImportResult {
	return internal.ImportResult{
		Success: false,
		Rows:    []internal.ParsedRecord{},
		Errors:  []internal.ImportError{internal.StructuralFailure(reason)},
		Stats:   internal.ImportStats{Errors: 1},
	}
}
