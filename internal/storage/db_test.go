package storage

import (
	"path/filepath"
	"testing"

	"cmedimport/internal"
	"cmedimport/internal/util"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cmed.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleResult() internal.ImportResult {
	return internal.ImportResult{
		Success:       false,
		ReferenceDate: util.StringPtr("2026-03-01"),
		Rows: []internal.ParsedRecord{
			{
				Substancia:   "DIPIRONA",
				CodigoGGREM:  "504617040079317",
				Produto:      "NOVALGINA",
				Apresentacao: "500 MG COM CT BL AL X 30 COM",
				EAN1:         util.StringPtr("7891058000123"),
				Precos: internal.PriceMap{
					"pf_18":  util.FloatPtr(12.5),
					"pmc_18": util.FloatPtr(17.2),
					"pf_17":  nil,
				},
				RestricaoHospitalar: true,
				Tarja:               util.StringPtr("Tarja Vermelha"),
			},
		},
		Errors: []internal.ImportError{
			internal.MissingRegistrationCode(7, "ALIVIUM"),
		},
		Stats: internal.ImportStats{Total: 2, Parsed: 1, Errors: 1},
	}
}

func TestRecordImportRoundTrip(t *testing.T) {
	db := openTestDB(t)

	importID, err := db.RecordImport("cmed_2026_03.xlsx", "xlsx", sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if importID == 0 {
		t.Fatal("importID is zero")
	}

	rec, err := db.GetMedication("504617040079317")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("medication not found")
	}
	if rec.Produto != "NOVALGINA" || !rec.RestricaoHospitalar {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Precos["pf_18"] == nil || *rec.Precos["pf_18"] != 12.5 {
		t.Fatalf("pf_18=%v", rec.Precos["pf_18"])
	}
	if rec.Precos["pf_17"] != nil {
		t.Fatalf("pf_17=%v, want nil", rec.Precos["pf_17"])
	}
	if rec.Tarja == nil || *rec.Tarja != "Tarja Vermelha" {
		t.Fatalf("tarja=%v", rec.Tarja)
	}

	byEAN, err := db.FindByEAN("7891058000123")
	if err != nil {
		t.Fatal(err)
	}
	if byEAN == nil || byEAN.CodigoGGREM != "504617040079317" {
		t.Fatalf("FindByEAN returned %+v", byEAN)
	}

	count, err := db.CountMedications()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("count=%d", count)
	}
}

func TestRecordImportUpsert(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.RecordImport("first.xlsx", "xlsx", sampleResult()); err != nil {
		t.Fatal(err)
	}

	updated := sampleResult()
	updated.Rows[0].Produto = "NOVALGINA 500"
	if _, err := db.RecordImport("second.xlsx", "xlsx", updated); err != nil {
		t.Fatal(err)
	}

	rec, err := db.GetMedication("504617040079317")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Produto != "NOVALGINA 500" {
		t.Fatalf("produto=%q, want the re-imported value", rec.Produto)
	}

	count, _ := db.CountMedications()
	if count != 1 {
		t.Fatalf("count=%d, want upsert not duplicate", count)
	}
}

func TestImportRunsAndErrors(t *testing.T) {
	db := openTestDB(t)

	importID, err := db.RecordImport("cmed.xlsx", "xlsx", sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListImports(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs=%d", len(runs))
	}
	run := runs[0]
	if run.FileName != "cmed.xlsx" || run.Total != 2 || run.Parsed != 1 || run.Errors != 1 {
		t.Fatalf("run=%+v", run)
	}
	if run.ReferenceDate == nil || *run.ReferenceDate != "2026-03-01" {
		t.Fatalf("referenceDate=%v", run.ReferenceDate)
	}

	importErrors, err := db.GetImportErrors(importID)
	if err != nil {
		t.Fatal(err)
	}
	if len(importErrors) != 1 {
		t.Fatalf("errors=%d", len(importErrors))
	}
	if importErrors[0].Row != 7 || importErrors[0].Message != "Código GGREM ausente" {
		t.Fatalf("error=%+v", importErrors[0])
	}
	if importErrors[0].Data["produto"] != "ALIVIUM" {
		t.Fatalf("data=%v", importErrors[0].Data)
	}
}

func TestMetadata(t *testing.T) {
	db := openTestDB(t)

	value, err := db.GetMetadata("lastImport")
	if err != nil {
		t.Fatal(err)
	}
	if value != nil {
		t.Fatalf("value=%v, want nil before set", value)
	}

	if err := db.SetMetadata("lastImport", "2026-03-01"); err != nil {
		t.Fatal(err)
	}
	value, err = db.GetMetadata("lastImport")
	if err != nil {
		t.Fatal(err)
	}
	if value == nil || *value != "2026-03-01" {
		t.Fatalf("value=%v", value)
	}
}
