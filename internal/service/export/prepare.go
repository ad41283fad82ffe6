// Package export renders the daily traffic report as a downloadable
// file. Values are formatted the way the operator's spreadsheets expect:
// Indonesian number grouping, Ya/Tidak booleans, dd/MM/yyyy dates.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column maps a source key to its spreadsheet header
type Column struct {
	Key   string
	Title string
}

// FormatNumber renders an integer with Indonesian thousands grouping:
// 1234567 -> "1.234.567".
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatDate renders dd/MM/yyyy
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatValue renders one cell. Numbers get grouping, booleans become
// Ya/Tidak, times become dates, nil becomes the empty string. Strings
// that already look like an ISO date are reformatted too, since the
// backend sends dates as strings.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		if t, err := time.Parse(time.RFC3339, x); err == nil {
			return FormatDate(t)
		}
		if t, err := time.Parse("2006-01-02", x); err == nil {
			return FormatDate(t)
		}
		return x
	case bool:
		if x {
			return "Ya"
		}
		return "Tidak"
	case int:
		return FormatNumber(int64(x))
	case int64:
		return FormatNumber(x)
	case float64:
		// JSON numbers decode as float64; whole values are counters
		if x == float64(int64(x)) {
			return FormatNumber(int64(x))
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return FormatDate(x)
	default:
		return fmt.Sprint(x)
	}
}

// PrepareRows turns source maps into formatted cell rows following the
// column order. Missing keys render as empty cells; no row is dropped.
func PrepareRows(data []map[string]any, cols []Column) [][]string {
	rows := make([][]string, 0, len(data))
	for _, item := range data {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = FormatValue(item[col.Key])
		}
		rows = append(rows, row)
	}
	return rows
}

// Headers returns the column titles in order
func Headers(cols []Column) []string {
	titles := make([]string, len(cols))
	for i, col := range cols {
		titles[i] = col.Title
	}
	return titles
}
