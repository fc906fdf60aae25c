package util

import (
	"regexp"
	"strconv"
	"strings"
)

// The CMED "APRESENTAÇÃO" column is free text with informal conventions:
// an optional concentration at the very start, then the pharmaceutical form
// and packaging ("50 MG COM CT BL AL PLAS TRANS X 30"). The extractors below
// are ordered first-match-wins cascades; precedence is load-bearing.

// Concentration rules, tried in order:
//  1. parenthesized additive expression plus unit ("(2 + 0,03) MG",
//     "(50000 + 10000) UI/ML")
//  2. bare value plus a non-volume unit, so a fill volume like "10 ML" is
//     never read as a concentration
//  3. bare value plus unit-with-divisor, covering the volume-unit numerators
//     rule 2 excludes ("50 ML/DOSE")
var concentrationRules = []*regexp.Regexp{
	regexp.MustCompile(`^\(\s*\d+(?:[.,]\d+)?(?:\s*\+\s*\d+(?:[.,]\d+)?)+\s*\)\s*(?:MCG|MG|G|UI|ML|%)(?:/(?:ML|G|L|DOSE))?`),
	regexp.MustCompile(`^\d+(?:[.,]\d+)?\s*(?:(?:MCG|MG|G|UI)(?:/(?:ML|G|L|DOSE))?\b|%)`),
	regexp.MustCompile(`^\d+(?:[.,]\d+)?\s*(?:MCG|MG|G|UI|ML)/(?:ML|G|L|DOSE)\b`),
}

// ExtractConcentration pulls the dosage strength from the start of a
// presentation string. Concentration only ever appears at position zero in
// the source data; a concentration-shaped token later in the text is
// something else (fill volume, pack count) and is ignored. Nil when nothing
// matches, which is a common and valid outcome.
func ExtractConcentration(presentation string) *string {
	text := strings.ToUpper(strings.TrimSpace(presentation))
	for _, rule := range concentrationRules {
		if m := rule.FindString(text); m != "" {
			return StringPtr(NormalizeSpaces(m))
		}
	}
	return nil
}

// Packaging-count pattern: a small integer immediately followed by a
// packaging noun. Volume, mass and percentage units are deliberately not in
// the token set so "20ML" is never read as a 20-unit pack.
var conversionFactorPattern = regexp.MustCompile(`\b(\d{1,4})\s*(?:COMPRIMIDOS?|COMP|CPR|COM|C[AÁ]PSULAS?|CAPS|CAP|DR[AÁ]GEAS?|DRG|FRASCOS?|FR|FA|AMPOLAS?|AMP|ENVELOPES?|ENV|SACH[EÊ]S?|BISNAGAS?|BISN|SERINGAS?|SER|ADESIVOS?|ADES|UNIDADES?|UN)\b`)

// ExtractConversionFactor finds the pack count of a presentation ("CT BL AL
// X 30 COM" -> "30"). Matches above 1000 are treated as spurious and
// skipped. "1" is the neutral factor when nothing matches.
func ExtractConversionFactor(presentation string) string {
	text := strings.ToUpper(strings.TrimSpace(presentation))
	for _, m := range conversionFactorPattern.FindAllStringSubmatch(text, -1) {
		value, err := strconv.Atoi(m[1])
		if err != nil || value < 1 || value > 1000 {
			continue
		}
		return strconv.Itoa(value)
	}
	return "1"
}

type unitRule struct {
	re   *regexp.Regexp
	code string
}

// Ordered most-specific-first: frasco-ampola before ampola, and the
// solution/suspension forms (which ship in a bottle) before the generic
// frasco and comprimido patterns. Accented and bare spellings are both
// accepted; the source data carries both depending on the export.
var unitRules = []unitRule{
	{regexp.MustCompile(`FR(?:ASCO)?[\s-]*AMP(?:OLA)?|\bFA\b`), "FA"},
	{regexp.MustCompile(`\bAMP(?:OLAS?)?\b`), "AMP"},
	{regexp.MustCompile(`\bSOL(?:U[CÇ][AÃ]O)?\b|\bSUSP?(?:ENS[AÃ]O)?\b|\bXPE\b|\bXAROPE\b|\bGTS\b|\bGOTAS\b|\bSPRAY\b|\bAER(?:OSSOL)?\b`), "FR"},
	{regexp.MustCompile(`\bFR(?:ASCOS?)?\b`), "FR"},
	{regexp.MustCompile(`\bCOM(?:P(?:RIMIDOS?)?)?\b|\bCPR\b`), "COM"},
	{regexp.MustCompile(`\bC[AÁ]PS?(?:ULAS?)?\b`), "CAP"},
	{regexp.MustCompile(`\bDR[AÁ]G(?:EAS?)?\b|\bDRG\b`), "DRG"},
	{regexp.MustCompile(`\bENV(?:ELOPES?)?\b|\bSACH[EÊ]S?\b`), "ENV"},
	{regexp.MustCompile(`\bBISN(?:AGAS?)?\b|\bPOM(?:ADA)?\b|\bCREME\b|\bGEL\b`), "BISN"},
	{regexp.MustCompile(`\bSER(?:INGAS?)?\b`), "SER"},
	{regexp.MustCompile(`\bADES(?:IVOS?)?\b`), "ADES"},
}

// IdentifyUnit classifies a presentation into the normalized packaging
// vocabulary, falling back to the generic "UN".
func IdentifyUnit(presentation string) string {
	text := strings.ToUpper(strings.TrimSpace(presentation))
	for _, rule := range unitRules {
		if rule.re.MatchString(text) {
			return rule.code
		}
	}
	return "UN"
}
