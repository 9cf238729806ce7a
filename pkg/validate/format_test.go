package validate

import "testing"

func TestFormatters(t *testing.T) {
	cases := []struct {
		name   string
		format func(string) string
		in     string
		want   string
	}{
		{"cpf", FormatCPF, "52998224725", "529.982.247-25"},
		{"cnpj", FormatCNPJ, "11222333000181", "11.222.333/0001-81"},
		{"phone11", FormatPhone, "65981111125", "(65) 98111-1125"},
		{"phone10", FormatPhone, "6581111125", "(65) 8111-1125"},
		{"cep", FormatCEP, "78195000", "78195-000"},
		{"cep short passthrough", FormatCEP, "7819", "7819"},
		{"phone short passthrough", FormatPhone, "981", "981"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.format(tc.in)
			if got != tc.want {
				t.Fatalf("format(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := tc.format(got); again != got {
				t.Fatalf("formatter not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFormatCEPRoundTrip(t *testing.T) {
	// Strip-then-format equals format directly for any 8-digit input.
	inputs := []string{"78195-000", "78195000", "78.195-000", "cep 78195000"}
	for _, in := range inputs {
		if got, want := FormatCEP(Digits(in)), FormatCEP(in); got != want {
			t.Errorf("FormatCEP(Digits(%q)) = %q, FormatCEP(%q) = %q", in, got, in, want)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("(65) 98111-1125"); got != "65981111125" {
		t.Fatalf("Digits = %q", got)
	}
	if got := Digits("abc"); got != "" {
		t.Fatalf("Digits(abc) = %q", got)
	}
}
