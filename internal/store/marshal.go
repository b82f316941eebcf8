package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// encodeCoefficients converts a coefficient sequence to TEXT for storage.
// Each value uses the shortest decimal form that parses back to the same
// float64, joined by commas: "1,-8,12,3". Non-finite values encode as
// NaN, +Inf, and -Inf.
func encodeCoefficients(coeffs []float64) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// encodeOptionalCoefficients maps a nil sequence to SQL NULL.
func encodeOptionalCoefficients(coeffs []float64) any {
	if coeffs == nil {
		return nil
	}
	return encodeCoefficients(coeffs)
}

// decodeCoefficients parses stored TEXT back into a coefficient sequence.
// The empty string decodes to an empty sequence.
func decodeCoefficients(data string) ([]float64, error) {
	if data == "" {
		return []float64{}, nil
	}

	parts := strings.Split(data, ",")
	coeffs := make([]float64, len(parts))
	for i, part := range parts {
		c, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("decode coefficients: %w", err)
		}
		coeffs[i] = c
	}
	return coeffs, nil
}

// decodeOptionalCoefficients maps SQL NULL back to a nil sequence.
func decodeOptionalCoefficients(v sql.NullString) ([]float64, error) {
	if !v.Valid {
		return nil, nil
	}
	return decodeCoefficients(v.String)
}

// encodeFloat converts an optional float to its stored TEXT form.
// nil maps to SQL NULL.
func encodeFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}

// decodeFloat parses an optional stored float. SQL NULL maps to nil.
func decodeFloat(v sql.NullString) (*float64, error) {
	if !v.Valid {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v.String, 64)
	if err != nil {
		return nil, fmt.Errorf("decode float: %w", err)
	}
	return &f, nil
}

// nullableText maps the empty string to SQL NULL.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
