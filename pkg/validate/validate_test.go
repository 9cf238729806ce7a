package validate

import (
	"fmt"
	"testing"
	"time"
)

func TestCPF(t *testing.T) {
	valid := []string{
		"529.982.247-25",
		"52998224725",
		"111.444.777-35",
	}
	for _, cpf := range valid {
		if !CPF(cpf) {
			t.Errorf("CPF(%q) = false, want true", cpf)
		}
	}

	invalid := []string{
		"",
		"123",
		"529.982.247-2",
		"529.982.247-255",
		"111.111.111-11",
		"000.000.000-00",
		"529.982.247-26", // second check digit off by one
		"529.982.247-35", // first check digit off by one
		"abc.def.ghi-jk",
	}
	for _, cpf := range invalid {
		if CPF(cpf) {
			t.Errorf("CPF(%q) = true, want false", cpf)
		}
	}
}

func TestCPF_CheckDigitMutations(t *testing.T) {
	// Any single-digit mutation of the two verification digits must fail.
	const base = "529982247"
	for d1 := 0; d1 <= 9; d1++ {
		for d2 := 0; d2 <= 9; d2++ {
			cpf := fmt.Sprintf("%s%d%d", base, d1, d2)
			want := d1 == 2 && d2 == 5
			if got := CPF(cpf); got != want {
				t.Errorf("CPF(%q) = %v, want %v", cpf, got, want)
			}
		}
	}
}

func TestCNPJ(t *testing.T) {
	if !CNPJ("11.222.333/0001-81") {
		t.Error("CNPJ(11.222.333/0001-81) = false, want true")
	}
	if !CNPJ("11222333000181") {
		t.Error("CNPJ(11222333000181) = false, want true")
	}
	invalid := []string{
		"",
		"11.222.333/0001-80",
		"11.222.333/0001-8",
		"11.111.111/1111-11",
	}
	for _, cnpj := range invalid {
		if CNPJ(cnpj) {
			t.Errorf("CNPJ(%q) = true, want false", cnpj)
		}
	}
}

func TestEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":              true,
		"maria.silva@uol.com": true,
		"":                    false,
		"semarroba.com":       false,
		"a@b":                 false,
		"a b@c.com":           false,
		"a@c .com":            false,
		"@b.com":              false,
		"a@":                  false,
		"a@@b.com":            false,
		"a@b.":                false,
	}
	for email, want := range cases {
		if got := Email(email); got != want {
			t.Errorf("Email(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := map[string]bool{
		"(65) 98111-1125": true,
		"6581111125":      true,
		"65981111125":     true,
		"981111125":       false,
		"659811111256":    false,
		"":                false,
	}
	for phone, want := range cases {
		if got := Phone(phone); got != want {
			t.Errorf("Phone(%q) = %v, want %v", phone, got, want)
		}
	}
}

func TestCEP(t *testing.T) {
	cases := map[string]bool{
		"78195-000": true,
		"78195000":  true,
		"7819500":   false,
		"781950000": false,
		"":          false,
	}
	for cep, want := range cases {
		if got := CEP(cep); got != want {
			t.Errorf("CEP(%q) = %v, want %v", cep, got, want)
		}
	}
}

func TestBirthDate(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	cases := map[string]bool{
		"2016-08-30": true,  // ten years and a day
		"2016-08-31": true,  // exactly ten years
		"2026-09-01": false, // tomorrow
		"2024-01-15": false, // under three years old
		"2023-08-31": true,  // exactly three
		"1900-01-01": false, // over 120
		"1906-08-31": true,  // exactly 120
		"not-a-date": false,
		"":           false,
	}
	for date, want := range cases {
		if got := BirthDate(date, now); got != want {
			t.Errorf("BirthDate(%q) = %v, want %v", date, got, want)
		}
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		birth string
		age   int
		ok    bool
	}{
		{"2016-08-30", 10, true}, // birthday passed yesterday
		{"2016-08-31", 10, true}, // birthday today
		{"2016-09-01", 9, true},  // birthday tomorrow
		{"2026-09-01", 0, false}, // not born yet
		{"", 0, false},
		{"31/08/2016", 0, false},
	}
	for _, tc := range cases {
		age, ok := Age(tc.birth, now)
		if age != tc.age || ok != tc.ok {
			t.Errorf("Age(%q) = (%d, %v), want (%d, %v)", tc.birth, age, ok, tc.age, tc.ok)
		}
	}
}

func TestImage(t *testing.T) {
	if res := Image("image/png", 1024); !res.OK {
		t.Errorf("png upload rejected: %s", res.Reason)
	}
	if res := Image("image/webp", MaxImageSize); !res.OK {
		t.Errorf("upload at the size limit rejected: %s", res.Reason)
	}
	if res := Image("image/gif", 1024); res.OK {
		t.Error("gif upload accepted, want rejection")
	}
	if res := Image("image/jpeg", MaxImageSize+1); res.OK {
		t.Error("oversized upload accepted, want rejection")
	}
	if res := Image("", 0); res.OK || res.Reason != "Nenhum arquivo selecionado" {
		t.Errorf("missing file: got %+v", res)
	}
}
