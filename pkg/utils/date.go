package utils

import (
	"fmt"
	"time"
)

// ParseDate interpreta "YYYY-MM-DD" no fuso informado. String vazia
// devolve nil sem erro.
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q, use o formato YYYY-MM-DD: %w", dateStr, err)
	}

	return &date, nil
}
