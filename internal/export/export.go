// Package export writes an XLSX report of one import run: the parsed rows
// with their derived catalog suggestions, and a second sheet with the row
// errors for manual correction of the source file.
package export

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cmedimport/internal"
	"cmedimport/internal/suggest"
)

func WriteReport(res internal.ImportResult, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetName(sheet, "Medicamentos")
	sheet = "Medicamentos"

	headers := []string{
		"codigo_ggrem", "substancia", "laboratorio", "registro",
		"ean_1", "produto", "apresentacao", "classe_terapeutica",
		"pf_18", "pmc_18", "restricao_hospitalar", "cap", "tarja",
		"concentracao", "unidade", "fator_conversao",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range res.Rows {
		hint := suggest.ForRecord(rec)
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, rec.CodigoGGREM)
		set(2, rec.Substancia)
		set(3, rec.Laboratorio)
		set(4, rec.Registro)
		set(5, derefString(rec.EAN1))
		set(6, rec.Produto)
		set(7, rec.Apresentacao)
		set(8, rec.ClasseTerapeutica)
		set(9, derefFloat(rec.Precos["pf_18"]))
		set(10, derefFloat(rec.Precos["pmc_18"]))
		set(11, boolLabel(rec.RestricaoHospitalar))
		set(12, boolLabel(rec.CAP))
		set(13, derefString(rec.Tarja))
		set(14, derefString(hint.Concentracao))
		set(15, hint.Unidade)
		set(16, hint.FatorConversao)
	}

	if len(res.Errors) > 0 {
		if _, err := f.NewSheet("Erros"); err != nil {
			return err
		}
		errHeaders := []string{"linha", "mensagem", "produto"}
		for i, h := range errHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue("Erros", cell, h)
		}
		for i, impErr := range res.Errors {
			r := i + 2
			cell, _ := excelize.CoordinatesToCellName(1, r)
			_ = f.SetCellValue("Erros", cell, impErr.Row)
			cell, _ = excelize.CoordinatesToCellName(2, r)
			_ = f.SetCellValue("Erros", cell, impErr.Message)
			cell, _ = excelize.CoordinatesToCellName(3, r)
			_ = f.SetCellValue("Erros", cell, errProduto(impErr))
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func errProduto(impErr internal.ImportError) string {
	if impErr.Data == nil {
		return ""
	}
	if produto, ok := impErr.Data["produto"].(string); ok {
		return produto
	}
	return ""
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func boolLabel(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
