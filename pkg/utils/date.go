package utils

import (
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converte uma data no formato YYYY-MM-DD. String vazia retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// FormatDate é o inverso de ParseDate
func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(dateLayout)
}

// ParseYear lê um ano de query string; vazio devolve fallback
func ParseYear(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
