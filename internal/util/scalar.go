package util

import (
	"regexp"
	"strconv"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// ParseDecimal converts a CMED price cell to a number. The table uses the
// Brazilian convention: comma as decimal separator, optional dots as
// thousand separators. Empty cells and the "-" placeholder mean no value.
// Never returns an error; anything unparseable is nil.
func ParseDecimal(input string) *float64 {
	s := strings.TrimSpace(input)
	if s == "" || s == "-" {
		return nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return FloatPtr(parsed)
}

// ParseBoolean maps the Portuguese yes/no cells of the regulatory columns.
// The truthy set is closed; an explicit "Não" and an absent cell are both
// false.
func ParseBoolean(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "sim", "s", "yes", "true", "1":
		return true
	}
	return false
}

// CleanEAN strips internal whitespace and hyphens from a barcode cell.
// Cells that reduce to nothing, or hold the "-" placeholder, become nil.
func CleanEAN(input string) *string {
	s := strings.TrimSpace(input)
	if s == "-" {
		return nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	if s == "" {
		return nil
	}
	return &s
}

// NormalizeSpaces collapses whitespace runs and trims the result.
func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }
