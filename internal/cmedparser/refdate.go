package cmedparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The publication date lives somewhere in the free-text preamble
// ("LISTA DE PREÇOS - 01/03/2026", "atualizada em março de 2026", ...).
// Best-effort extraction: first pattern hit wins, nil when nothing is
// found. Only the first few preamble rows are scanned; the date has never
// been observed lower.
const maxDateScanRows = 10

var (
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	monthDatePattern   = regexp.MustCompile(`(?i)\b(JANEIRO|FEVEREIRO|MARÇO|MARCO|ABRIL|MAIO|JUNHO|JULHO|AGOSTO|SETEMBRO|OUTUBRO|NOVEMBRO|DEZEMBRO)\b(?:\s+DE)?\s+(\d{4})\b`)
)

var monthNumbers = map[string]int{
	"JANEIRO": 1, "FEVEREIRO": 2, "MARÇO": 3, "ABRIL": 4,
	"MAIO": 5, "JUNHO": 6, "JULHO": 7, "AGOSTO": 8,
	"SETEMBRO": 9, "OUTUBRO": 10, "NOVEMBRO": 11, "DEZEMBRO": 12,
}

func extractReferenceDate(preamble [][]string) *string {
	limit := len(preamble)
	if limit > maxDateScanRows {
		limit = maxDateScanRows
	}
	for i := 0; i < limit; i++ {
		text := strings.Join(preamble[i], " ")
		if date := matchNumericDate(text); date != nil {
			return date
		}
		if date := matchMonthDate(text); date != nil {
			return date
		}
	}
	return nil
}

func matchNumericDate(text string) *string {
	m := numericDatePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2020 || year > 2100 {
		return nil
	}
	date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	return &date
}

// matchMonthDate handles the "março de 2026" form. The accented and bare
// spellings of March are folded; no day is present, so the first of the
// month is assumed.
func matchMonthDate(text string) *string {
	m := monthDatePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	name := strings.ToUpper(m[1])
	if name == "MARCO" {
		name = "MARÇO"
	}
	month, ok := monthNumbers[name]
	if !ok {
		return nil
	}
	year, _ := strconv.Atoi(m[2])
	date := fmt.Sprintf("%04d-%02d-01", year, month)
	return &date
}
