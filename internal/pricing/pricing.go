// Package pricing resolves which published price column applies to a sale
// in a given Brazilian state.
package pricing

import "strings"

type PriceBasis string

const (
	BasisPF  PriceBasis = "pf"
	BasisPMC PriceBasis = "pmc"
)

// ICMS tier per state, as published alongside the CMED table. Kept as an
// ordered pair list; the table is fixed at compile time and never rebinds.
var icmsByUF = []struct {
	UF   string
	Rate string
}{
	{"AC", "19"}, {"AL", "19"}, {"AM", "20"}, {"AP", "18"},
	{"BA", "20.5"}, {"CE", "20"}, {"DF", "20"}, {"ES", "17"},
	{"GO", "19"}, {"MA", "22"}, {"MG", "18"}, {"MS", "17"},
	{"MT", "17"}, {"PA", "19"}, {"PB", "20"}, {"PE", "20.5"},
	{"PI", "21"}, {"PR", "19.5"}, {"RJ", "22"}, {"RN", "20"},
	{"RO", "19.5"}, {"RR", "20"}, {"RS", "17"}, {"SC", "17"},
	{"SE", "19"}, {"SP", "18"}, {"TO", "20"},
}

const defaultRate = "18"

// RateForUF returns the ICMS tier label for a state code, defaulting to the
// 18% tier for unrecognized codes.
func RateForUF(uf string) string {
	code := strings.ToUpper(strings.TrimSpace(uf))
	for _, entry := range icmsByUF {
		if entry.UF == code {
			return entry.Rate
		}
	}
	return defaultRate
}

// PriceFieldForUF builds the normalized price-map key for a state, price
// basis and alcohol-tax variant: ("BA", BasisPF, true) -> "pf_20_5_alc".
// Pure lookup, total over its inputs.
func PriceFieldForUF(uf string, basis PriceBasis, alc bool) string {
	tier := strings.NewReplacer(".", "_", ",", "_").Replace(RateForUF(uf))
	key := string(basis) + "_" + tier
	if alc {
		key += "_alc"
	}
	return key
}
