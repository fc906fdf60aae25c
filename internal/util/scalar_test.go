package util

import "testing"

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "decimal comma", input: "12,5", want: 12.5},
		{name: "price cell", input: "12,50", want: 12.5},
		{name: "thousand dot with comma", input: "1.234,56", want: 1234.56},
		{name: "embedded space", input: "1 234,56", want: 1234.56},
		{name: "plain integer", input: "42", want: 42},
		{name: "dot decimal", input: "1.5", want: 1.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDecimal(tc.input)
			if got == nil {
				t.Fatalf("got nil, want %v", tc.want)
			}
			if *got != tc.want {
				t.Fatalf("got %v want %v", *got, tc.want)
			}
		})
	}
}

func TestParseDecimalNoValue(t *testing.T) {
	for _, input := range []string{"", "   ", "-", "abc", "12,5,3x"} {
		if got := ParseDecimal(input); got != nil {
			t.Fatalf("ParseDecimal(%q) = %v, want nil", input, *got)
		}
	}
}

func TestParseBoolean(t *testing.T) {
	truthy := []string{"sim", "Sim", "SIM", "s", "S", "yes", "true", "1", " sim "}
	for _, input := range truthy {
		if !ParseBoolean(input) {
			t.Fatalf("ParseBoolean(%q) = false, want true", input)
		}
	}

	falsy := []string{"", "não", "nao", "n", "no", "0", "false", "2", "-"}
	for _, input := range falsy {
		if ParseBoolean(input) {
			t.Fatalf("ParseBoolean(%q) = true, want false", input)
		}
	}
}

func TestCleanEAN(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "7891234567890", want: "7891234567890"},
		{input: "789 1234-567890", want: "7891234567890"},
		{input: " 7891058 ", want: "7891058"},
	}
	for _, tc := range cases {
		got := CleanEAN(tc.input)
		if got == nil || *got != tc.want {
			t.Fatalf("CleanEAN(%q) = %v, want %q", tc.input, got, tc.want)
		}
	}

	for _, input := range []string{"", "-", "  ", " - - "} {
		if got := CleanEAN(input); got != nil {
			t.Fatalf("CleanEAN(%q) = %q, want nil", input, *got)
		}
	}
}
