// Package suggest derives catalog-import hints from parsed CMED rows: the
// dosage strength, the packaging unit and the pack count, all recovered
// from the free-text presentation column.
package suggest

import (
	"cmedimport/internal"
	"cmedimport/internal/util"
)

type Suggestion struct {
	CodigoGGREM    string  `json:"codigo_ggrem"`
	Produto        string  `json:"produto"`
	Apresentacao   string  `json:"apresentacao"`
	Concentracao   *string `json:"concentracao"`
	Unidade        string  `json:"unidade"`
	FatorConversao string  `json:"fator_conversao"`
}

func ForRecord(rec internal.ParsedRecord) Suggestion {
	return Suggestion{
		CodigoGGREM:    rec.CodigoGGREM,
		Produto:        rec.Produto,
		Apresentacao:   rec.Apresentacao,
		Concentracao:   util.ExtractConcentration(rec.Apresentacao),
		Unidade:        util.IdentifyUnit(rec.Apresentacao),
		FatorConversao: util.ExtractConversionFactor(rec.Apresentacao),
	}
}

func ForRecords(records []internal.ParsedRecord) []Suggestion {
	out := make([]Suggestion, 0, len(records))
	for _, rec := range records {
		out = append(out, ForRecord(rec))
	}
	return out
}
