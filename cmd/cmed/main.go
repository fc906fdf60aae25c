package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cmedimport/internal/cmedparser"
	"cmedimport/internal/config"
	"cmedimport/internal/export"
	"cmedimport/internal/fetch"
	"cmedimport/internal/pricing"
	"cmedimport/internal/storage"
	"cmedimport/internal/suggest"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "CMED xlsx/csv file")
		store := fs.Bool("store", true, "persist parsed rows into the catalog db")
		report := fs.String("report", "", "optional xlsx report path")
		suggestions := fs.Bool("suggest", false, "print catalog suggestions as json")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}

		res, err := cmedparser.ParseFile(*file)
		must(err)

		if *store {
			db, err := storage.Open(cfg.DBPath)
			must(err)
			defer db.Close()
			data, err := os.ReadFile(*file)
			must(err)
			format := cmedparser.DetectFormat(filepath.Base(*file), data)
			importID, err := db.RecordImport(filepath.Base(*file), string(format), res)
			must(err)
			fmt.Printf("import stored id=%d\n", importID)
		}

		if *report != "" {
			must(export.WriteReport(res, *report))
			fmt.Printf("report written to %s\n", *report)
		}

		if *suggestions {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			must(enc.Encode(suggest.ForRecords(res.Rows)))
		}

		refDate := "-"
		if res.ReferenceDate != nil {
			refDate = *res.ReferenceDate
		}
		fmt.Printf("import done success=%t referenceDate=%s total=%d parsed=%d errors=%d\n",
			res.Success, refDate, res.Stats.Total, res.Stats.Parsed, res.Stats.Errors)
		for _, impErr := range res.Errors {
			fmt.Printf("  row=%d %s\n", impErr.Row, impErr.Message)
		}

	case "validate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "CMED xlsx/csv file")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		report, err := cmedparser.ValidateFile(*file)
		must(err)
		fmt.Printf("valid=%t format=%s estimatedRows=%d estimatedSeconds=%.1f\n",
			report.Valid, report.Format, report.EstimatedRows, report.EstimatedSeconds)
		if report.Reason != "" {
			fmt.Printf("reason: %s\n", report.Reason)
		}

	case "fetch":
		svc := fetch.NewService(cfg)
		path, err := svc.FetchLatest()
		must(err)
		fmt.Printf("downloaded %s\n", path)

	case "price:lookup":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		ggrem := fs.String("ggrem", "", "GGREM registration code")
		ean := fs.String("ean", "", "EAN barcode (alternative to --ggrem)")
		uf := fs.String("uf", "SP", "2-letter state code")
		basis := fs.String("basis", "pmc", "pf|pmc")
		alc := fs.Bool("alc", false, "alcohol-tax price variant")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*ggrem) == "" && strings.TrimSpace(*ean) == "" {
			must(fmt.Errorf("--ggrem or --ean is required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		rec, err := db.GetMedication(*ggrem)
		must(err)
		if rec == nil && *ean != "" {
			rec, err = db.FindByEAN(*ean)
			must(err)
		}
		if rec == nil {
			must(fmt.Errorf("medication not found"))
		}

		field := pricing.PriceFieldForUF(*uf, pricing.PriceBasis(*basis), *alc)
		price := rec.Precos[field]
		if price == nil {
			fmt.Printf("%s %s: %s has no published price (field %s)\n", rec.Produto, rec.Apresentacao, strings.ToUpper(*uf), field)
			return
		}
		fmt.Printf("%s %s: %s %s = %.2f\n", rec.Produto, rec.Apresentacao, strings.ToUpper(*uf), field, *price)

	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "CMED xlsx/csv file")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--file and --out are required"))
		}
		res, err := cmedparser.ParseFile(*file)
		must(err)
		must(export.WriteReport(res, *out))
		fmt.Printf("exported %d rows (%d errors) to %s\n", len(res.Rows), len(res.Errors), *out)

	case "imports:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs to show")
		_ = fs.Parse(os.Args[2:])
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		runs, err := db.ListImports(*limit)
		must(err)
		for _, run := range runs {
			refDate := "-"
			if run.ReferenceDate != nil {
				refDate = *run.ReferenceDate
			}
			fmt.Printf("id=%d file=%s format=%s referenceDate=%s total=%d parsed=%d errors=%d at=%s\n",
				run.ID, run.FileName, run.Format, refDate, run.Total, run.Parsed, run.Errors, run.CreatedAt)
		}

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`usage: cmed <command> [flags]

commands:
  import        parse a CMED file, store it and print stats
                  --file <path> [--store] [--report out.xlsx] [--suggest]
  validate      cheap pre-check of a candidate file
                  --file <path>
  fetch         download the current CMED spreadsheet from the ANVISA page
  price:lookup  resolve the applicable PF/PMC for a state
                  --ggrem <code> | --ean <barcode> [--uf SP] [--basis pf|pmc] [--alc]
  export:xlsx   parse a file and write the xlsx report
                  --file <path> --out <path>
  imports:list  show recent import runs
                  [--limit 20]`)
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
