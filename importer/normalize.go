package importer

import (
	"strconv"
	"strings"
)

// Clean canonicalizes a raw spreadsheet cell: whitespace runs collapse to a
// single space and placeholder values map to nil. "0"/"0.0" count as absent
// because zero is never a meaningful value for the text fields this is
// applied to.
func Clean(val string) *string {
	s := strings.Join(strings.Fields(val), " ")
	switch s {
	case "", "nan", "NaN", "None", "0", "0.0":
		return nil
	}
	return &s
}

// CleanID renders numeric-looking identifiers in canonical integer-string
// form. Lease ids arrive as floats ("121738.0") when the spreadsheet column
// is typed numeric.
func CleanID(val string) *string {
	s := Clean(val)
	if s == nil {
		return nil
	}
	if f, err := strconv.ParseFloat(*s, 64); err == nil {
		if i := int64(f); float64(i) == f {
			out := strconv.FormatInt(i, 10)
			return &out
		}
	}
	return s
}

// CleanInt coerces a cell to an integer, nil on anything malformed.
func CleanInt(val string) *int {
	s := Clean(val)
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil
	}
	i := int(f)
	if float64(i) != f {
		return nil
	}
	return &i
}

// CleanMonth coerces a cell to a 1-12 month, nil otherwise.
func CleanMonth(val string) *int {
	i := CleanInt(val)
	if i == nil || *i < 1 || *i > 12 {
		return nil
	}
	return i
}

// CleanFloat coerces a cell to a float, nil on anything malformed. Currency
// formatting ("$1,234.50") is tolerated.
func CleanFloat(val string) *float64 {
	s := Clean(val)
	if s == nil {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(*s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

// CleanDate keeps the first ten characters of a date-ish cell (the ISO date
// part of a timestamp), nil when absent.
func CleanDate(val string) *string {
	s := Clean(val)
	if s == nil {
		return nil
	}
	out := *s
	if len(out) > 10 {
		out = out[:10]
	}
	return &out
}
