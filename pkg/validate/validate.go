package validate

import (
	"strings"
	"time"
)

const (
	// MaxImageSize is the upload ceiling for dependent photos (5 MiB).
	MaxImageSize = 5 * 1024 * 1024

	minEnrollmentAge = 3
	maxEnrollmentAge = 120

	birthDateLayout = "2006-01-02"
)

// Digits strips every non-digit rune from the input.
func Digits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPF reports whether the value carries a valid 11-digit CPF, including both
// checksum digits. Punctuation is ignored.
func CPF(value string) bool {
	digits := Digits(value)
	if len(digits) != 11 || allSame(digits) {
		return false
	}
	if checksumDigit(digits[:9], 10) != int(digits[9]-'0') {
		return false
	}
	return checksumDigit(digits[:10], 11) == int(digits[10]-'0')
}

// CNPJ reports whether the value carries a valid 14-digit CNPJ. Punctuation is
// ignored.
func CNPJ(value string) bool {
	digits := Digits(value)
	if len(digits) != 14 || allSame(digits) {
		return false
	}
	if cnpjDigit(digits[:12]) != int(digits[12]-'0') {
		return false
	}
	return cnpjDigit(digits[:13]) == int(digits[13]-'0')
}

// checksumDigit computes a CPF verification digit over prefix using positional
// weights descending from firstWeight down to 2. remainder < 2 collapses to 0.
func checksumDigit(prefix string, firstWeight int) int {
	sum := 0
	for i, r := range prefix {
		sum += int(r-'0') * (firstWeight - i)
	}
	rest := 11 - sum%11
	if rest >= 10 {
		return 0
	}
	return rest
}

// cnpjDigit computes a CNPJ verification digit; weights cycle 2..9 starting
// from the rightmost position.
func cnpjDigit(prefix string) int {
	weight := 2
	sum := 0
	for i := len(prefix) - 1; i >= 0; i-- {
		sum += int(prefix[i]-'0') * weight
		if weight == 9 {
			weight = 2
		} else {
			weight++
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// Email checks the local@domain.tld shape without attempting full RFC 5322
// parsing, matching what the form accepts.
func Email(value string) bool {
	at := strings.IndexByte(value, '@')
	if at <= 0 || at != strings.LastIndexByte(value, '@') {
		return false
	}
	local, domain := value[:at], value[at+1:]
	if local == "" || domain == "" {
		return false
	}
	if strings.ContainsAny(local, " \t\n") || strings.ContainsAny(domain, " \t\n") {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// Phone accepts Brazilian landline and mobile numbers: 10 or 11 digits once
// punctuation is stripped.
func Phone(value string) bool {
	n := len(Digits(value))
	return n == 10 || n == 11
}

// CEP reports whether the value holds exactly 8 digits.
func CEP(value string) bool {
	return len(Digits(value)) == 8
}

// Required reports whether the value is non-empty after trimming whitespace.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// BirthDate validates an ISO date (YYYY-MM-DD): it must parse, must not be in
// the future, and the implied age must fall within [3, 120] years.
func BirthDate(value string, now time.Time) bool {
	if value == "" {
		return false
	}
	birth, err := time.Parse(birthDateLayout, value)
	if err != nil {
		return false
	}
	if birth.After(now) {
		return false
	}
	age, ok := Age(value, now)
	if !ok {
		return false
	}
	return age >= minEnrollmentAge && age <= maxEnrollmentAge
}

// Age computes whole years elapsed since the ISO birth date, subtracting one
// when the birthday has not yet occurred this year. The boolean is false when
// the date is absent, unparseable, or in the future.
func Age(value string, now time.Time) (int, bool) {
	if value == "" {
		return 0, false
	}
	birth, err := time.Parse(birthDateLayout, value)
	if err != nil {
		return 0, false
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

// ImageResult is the structured outcome of a photo upload check.
type ImageResult struct {
	OK     bool
	Reason string
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Image checks a photo upload by MIME type and byte size. Reason strings are
// the user-facing Portuguese messages shown next to the upload field.
func Image(contentType string, size int64) ImageResult {
	if contentType == "" && size == 0 {
		return ImageResult{Reason: "Nenhum arquivo selecionado"}
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return ImageResult{Reason: "Formato de arquivo não permitido. Use JPEG, PNG ou WebP."}
	}
	if size > MaxImageSize {
		return ImageResult{Reason: "Arquivo muito grande. Tamanho máximo: 5MB."}
	}
	return ImageResult{OK: true}
}
