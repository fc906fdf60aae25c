package internal

// PriceMap holds the normalized price fields of one CMED row: two bases
// (PF, PMC) crossed with the ICMS tiers and their ALC variants. A column
// absent from the source file stays nil.
type PriceMap map[string]*float64

// ParsedRecord is one normalized row of the CMED price table.
type ParsedRecord struct {
	Substancia        string  `json:"substancia"`
	CNPJ              string  `json:"cnpj"`
	Laboratorio       string  `json:"laboratorio"`
	CodigoGGREM       string  `json:"codigo_ggrem"`
	Registro          string  `json:"registro"`
	EAN1              *string `json:"ean_1"`
	EAN2              *string `json:"ean_2"`
	EAN3              *string `json:"ean_3"`
	Produto           string  `json:"produto"`
	Apresentacao      string  `json:"apresentacao"`
	ClasseTerapeutica string  `json:"classe_terapeutica"`
	TipoProduto       string  `json:"tipo_produto"`
	RegimePreco       string  `json:"regime_preco"`

	Precos PriceMap `json:"precos"`

	RestricaoHospitalar bool `json:"restricao_hospitalar"`
	CAP                 bool `json:"cap"`
	Confaz87            bool `json:"confaz_87"`
	ICMSZero            bool `json:"icms_0"`
	AnaliseRecursal     bool `json:"analise_recursal"`
	ListaConcessao      bool `json:"lista_concessao_credito"`

	Tarja           *string `json:"tarja"`
	Comercializacao *string `json:"comercializacao"`
}

type ErrorKind string

const (
	ErrMissingGGREM ErrorKind = "missing_ggrem"
	ErrRowFailure   ErrorKind = "row_failure"
	ErrStructural   ErrorKind = "structural"
)

// ImportError is one row-level or structural problem found during an import.
// Row is 1-based and counted against the original document, preamble and
// header included; structural errors use row 0.
type ImportError struct {
	Kind    ErrorKind      `json:"-"`
	Row     int            `json:"row"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func MissingRegistrationCode(row int, produto string) ImportError {
	return ImportError{
		Kind:    ErrMissingGGREM,
		Row:     row,
		Message: "Código GGREM ausente",
		Data:    map[string]any{"produto": produto},
	}
}

func RowParseFailure(row int, cause any) ImportError {
	return ImportError{
		Kind:    ErrRowFailure,
		Row:     row,
		Message: "Falha ao processar linha",
		Data:    map[string]any{"causa": causeString(cause)},
	}
}

func StructuralFailure(reason string) ImportError {
	return ImportError{Kind: ErrStructural, Row: 0, Message: reason}
}

func causeString(cause any) string {
	switch v := cause.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return "erro desconhecido"
	}
}

type ImportStats struct {
	Total  int `json:"total"`
	Parsed int `json:"parsed"`
	Errors int `json:"errors"`
}

// ImportResult is the terminal output of one import call. Success is true
// iff Errors is empty; structural failures leave Rows empty with a single
// error at row 0.
type ImportResult struct {
	Success       bool           `json:"success"`
	Rows          []ParsedRecord `json:"rows"`
	ReferenceDate *string        `json:"referenceDate"`
	Errors        []ImportError  `json:"errors"`
	Stats         ImportStats    `json:"stats"`
}

// ValidationReport is the cheap pre-check for a candidate file: detected
// format, estimated row count and a rough processing-time estimate, without
// a full parse.
type ValidationReport struct {
	Valid            bool    `json:"valid"`
	Format           string  `json:"format"`
	EstimatedRows    int     `json:"estimatedRows"`
	EstimatedSeconds float64 `json:"estimatedSeconds"`
	Reason           string  `json:"reason,omitempty"`
}

// ImportRun is one persisted import: which file, when, with what outcome.
type ImportRun struct {
	ID            int64
	FileName      string
	Format        string
	ReferenceDate *string
	Total         int
	Parsed        int
	Errors        int
	CreatedAt     string
}
