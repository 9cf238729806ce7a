package validate

// Formatters insert display punctuation at fixed digit offsets. Each one is
// idempotent: formatting already-formatted input with the same digits yields
// the same string. Inputs with unexpected digit counts pass through untouched.

// FormatCPF renders 11 digits as 000.000.000-00.
func FormatCPF(value string) string {
	d := Digits(value)
	if len(d) != 11 {
		return value
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// FormatCNPJ renders 14 digits as 00.000.000/0000-00.
func FormatCNPJ(value string) string {
	d := Digits(value)
	if len(d) != 14 {
		return value
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

// FormatPhone renders 10 digits as (00) 0000-0000 and 11 digits as
// (00) 00000-0000.
func FormatPhone(value string) string {
	d := Digits(value)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	default:
		return value
	}
}

// FormatCEP renders 8 digits as 00000-000.
func FormatCEP(value string) string {
	d := Digits(value)
	if len(d) != 8 {
		return value
	}
	return d[:5] + "-" + d[5:]
}
