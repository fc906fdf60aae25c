package cmedparser

// Column names are byte-exact copies of the header strings in the published
// CMED table, quirks included. A renamed or re-spaced column upstream makes
// that field silently null for every row; it never fails the import.

// headerSentinel marks the header row: the first row whose first cell,
// trimmed and upper-cased, equals it. Everything above is preamble.
const headerSentinel = "SUBSTÂNCIA"

const (
	colSubstancia      = "SUBSTÂNCIA"
	colCNPJ            = "CNPJ"
	colLaboratorio     = "LABORATÓRIO"
	colCodigoGGREM     = "CÓDIGO GGREM"
	colRegistro        = "REGISTRO"
	colEAN1            = "EAN 1"
	colEAN2            = "EAN 2"
	colEAN3            = "EAN 3"
	colProduto         = "PRODUTO"
	colApresentacao    = "APRESENTAÇÃO"
	colClasse          = "CLASSE TERAPÊUTICA"
	colTipoProduto     = "TIPO DE PRODUTO (STATUS DO PRODUTO)"
	colRegimePreco     = "REGIME DE PREÇO"
	colRestricaoHosp   = "RESTRIÇÃO HOSPITALAR"
	colCAP             = "CAP"
	colConfaz87        = "CONFAZ 87"
	colICMS0           = "ICMS 0%"
	colAnaliseRecursal = "ANÁLISE RECURSAL"
	colListaConcessao  = "LISTA DE CONCESSÃO DE CRÉDITO TRIBUTÁRIO (PIS/COFINS)"
	colComercializacao = "COMERCIALIZAÇÃO 2022"
	colTarja           = "TARJA"
)

type columnBinding struct {
	Source string
	Field  string
}

// priceColumns binds the PF/PMC header strings to normalized price-field
// ids. The doubled space in "PF 18 %  ALC" is present in the source file.
var priceColumns = []columnBinding{
	{"PF Sem Impostos", "pf_sem_impostos"},
	{"PF 0 %", "pf_0"},
	{"PF 12 %", "pf_12"},
	{"PF 12 % ALC", "pf_12_alc"},
	{"PF 17 %", "pf_17"},
	{"PF 17 % ALC", "pf_17_alc"},
	{"PF 17,5 %", "pf_17_5"},
	{"PF 17,5 % ALC", "pf_17_5_alc"},
	{"PF 18 %", "pf_18"},
	{"PF 18 %  ALC", "pf_18_alc"},
	{"PF 19 %", "pf_19"},
	{"PF 19 % ALC", "pf_19_alc"},
	{"PF 19,5 %", "pf_19_5"},
	{"PF 19,5 % ALC", "pf_19_5_alc"},
	{"PF 20 %", "pf_20"},
	{"PF 20 % ALC", "pf_20_alc"},
	{"PF 20,5 %", "pf_20_5"},
	{"PF 20,5 % ALC", "pf_20_5_alc"},
	{"PF 21 %", "pf_21"},
	{"PF 21 % ALC", "pf_21_alc"},
	{"PF 22 %", "pf_22"},
	{"PF 22 % ALC", "pf_22_alc"},
	{"PMC Sem Impostos", "pmc_sem_impostos"},
	{"PMC 0 %", "pmc_0"},
	{"PMC 12 %", "pmc_12"},
	{"PMC 12 % ALC", "pmc_12_alc"},
	{"PMC 17 %", "pmc_17"},
	{"PMC 17 % ALC", "pmc_17_alc"},
	{"PMC 17,5 %", "pmc_17_5"},
	{"PMC 17,5 % ALC", "pmc_17_5_alc"},
	{"PMC 18 %", "pmc_18"},
	{"PMC 18 % ALC", "pmc_18_alc"},
	{"PMC 19 %", "pmc_19"},
	{"PMC 19 % ALC", "pmc_19_alc"},
	{"PMC 19,5 %", "pmc_19_5"},
	{"PMC 19,5 % ALC", "pmc_19_5_alc"},
	{"PMC 20 %", "pmc_20"},
	{"PMC 20 % ALC", "pmc_20_alc"},
	{"PMC 20,5 %", "pmc_20_5"},
	{"PMC 20,5 % ALC", "pmc_20_5_alc"},
	{"PMC 21 %", "pmc_21"},
	{"PMC 21 % ALC", "pmc_21_alc"},
	{"PMC 22 %", "pmc_22"},
	{"PMC 22 % ALC", "pmc_22_alc"},
}
