package suggest

import (
	"testing"

	"cmedimport/internal"
)

func TestForRecord(t *testing.T) {
	rec := internal.ParsedRecord{
		CodigoGGREM:  "504617040079317",
		Produto:      "NOVALGINA",
		Apresentacao: "500 MG COM CT BL AL X 30 COM",
	}

	got := ForRecord(rec)
	if got.Concentracao == nil || *got.Concentracao != "500 MG" {
		t.Fatalf("concentracao=%v", got.Concentracao)
	}
	if got.Unidade != "COM" {
		t.Fatalf("unidade=%q", got.Unidade)
	}
	if got.FatorConversao != "30" {
		t.Fatalf("fatorConversao=%q", got.FatorConversao)
	}
}

func TestForRecordNoSignals(t *testing.T) {
	rec := internal.ParsedRecord{
		CodigoGGREM:  "504617040079317",
		Produto:      "KIT TESTE",
		Apresentacao: "KIT TESTE RAPIDO",
	}

	got := ForRecord(rec)
	if got.Concentracao != nil {
		t.Fatalf("concentracao=%v, want nil", got.Concentracao)
	}
	if got.Unidade != "UN" {
		t.Fatalf("unidade=%q, want the generic fallback", got.Unidade)
	}
	if got.FatorConversao != "1" {
		t.Fatalf("fatorConversao=%q, want the neutral factor", got.FatorConversao)
	}
}

func TestForRecordsKeepsOrder(t *testing.T) {
	records := []internal.ParsedRecord{
		{CodigoGGREM: "1", Produto: "A", Apresentacao: "50 MG COM CT BL AL X 20 COM"},
		{CodigoGGREM: "2", Produto: "B", Apresentacao: "SOL OR CT FR VD X 100 ML"},
	}

	got := ForRecords(records)
	if len(got) != 2 || got[0].CodigoGGREM != "1" || got[1].CodigoGGREM != "2" {
		t.Fatalf("unexpected suggestions: %+v", got)
	}
	if got[1].Unidade != "FR" {
		t.Fatalf("unidade=%q", got[1].Unidade)
	}
}
