package cmedparser

import "testing"

func row(cells ...string) []string { return cells }

func TestExtractReferenceDateNumeric(t *testing.T) {
	cases := []struct {
		name     string
		preamble [][]string
		want     string
	}{
		{
			name:     "slash date",
			preamble: [][]string{row("LISTA DE PREÇOS - 01/03/2026")},
			want:     "2026-03-01",
		},
		{
			name:     "date in later preamble row",
			preamble: [][]string{row("CMED"), row("Atualizada em 15/07/2025")},
			want:     "2025-07-15",
		},
		{
			name:     "single digit day and month",
			preamble: [][]string{row("publicada em 5/3/2024")},
			want:     "2024-03-05",
		},
		{
			name:     "month name",
			preamble: [][]string{row("Lista atualizada em março de 2026")},
			want:     "2026-03-01",
		},
		{
			name:     "month name without accent",
			preamble: [][]string{row("LISTA - MARCO 2026")},
			want:     "2026-03-01",
		},
		{
			name:     "other month name",
			preamble: [][]string{row("vigente a partir de dezembro de 2025")},
			want:     "2025-12-01",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractReferenceDate(tc.preamble)
			if got == nil {
				t.Fatalf("got nil, want %s", tc.want)
			}
			if *got != tc.want {
				t.Fatalf("got %s want %s", *got, tc.want)
			}
		})
	}
}

func TestExtractReferenceDateAbsent(t *testing.T) {
	cases := []struct {
		name     string
		preamble [][]string
	}{
		{name: "no preamble", preamble: nil},
		{name: "no date", preamble: [][]string{row("CMED - SECRETARIA EXECUTIVA")}},
		{name: "day out of range", preamble: [][]string{row("45/03/2026")}},
		{name: "month out of range", preamble: [][]string{row("01/13/2026")}},
		{name: "year below range", preamble: [][]string{row("01/03/2019")}},
		{name: "year above range", preamble: [][]string{row("01/03/2101")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractReferenceDate(tc.preamble); got != nil {
				t.Fatalf("got %s, want nil", *got)
			}
		})
	}
}

func TestExtractReferenceDateScanLimit(t *testing.T) {
	var preamble [][]string
	for i := 0; i < 10; i++ {
		preamble = append(preamble, row("texto livre"))
	}
	preamble = append(preamble, row("01/03/2026"))

	if got := extractReferenceDate(preamble); got != nil {
		t.Fatalf("date beyond the scan window was used: %s", *got)
	}
}
