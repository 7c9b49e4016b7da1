package utils

import "time"

// ParseDate interpreta datas no formato ISO (YYYY-MM-DD) vindas de query strings.
// String vazia significa "sem limite" e retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// MonthStart retorna o primeiro instante do mês de t, em UTC
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
