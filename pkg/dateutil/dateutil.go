package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TaxYearStartMonth and TaxYearStartDay mark the first day of a UK tax year (6 April).
const (
	TaxYearStartMonth = time.April
	TaxYearStartDay   = 6
)

// TaxYearOf returns the starting calendar year of the tax year containing t.
func TaxYearOf(t time.Time) int {
	year := t.Year()
	if t.Month() < TaxYearStartMonth || (t.Month() == TaxYearStartMonth && t.Day() < TaxYearStartDay) {
		return year - 1
	}
	return year
}

// TaxYearLabel formats a tax year as "2024/25".
func TaxYearLabel(startYear int) string {
	return fmt.Sprintf("%d/%02d", startYear, (startYear+1)%100)
}

// ParseTaxYearLabel accepts "2024/25", "2024-25", "24/25" and "2024" and
// returns the starting calendar year.
func ParseTaxYearLabel(label string) (int, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return 0, fmt.Errorf("empty tax year")
	}
	s = strings.ReplaceAll(s, "-", "/")

	first, second, hasSecond := strings.Cut(s, "/")
	start, err := strconv.Atoi(first)
	if err != nil {
		return 0, fmt.Errorf("invalid tax year %q", label)
	}
	if len(first) == 2 {
		start += 2000
	} else if len(first) != 4 {
		return 0, fmt.Errorf("invalid tax year %q", label)
	}

	if hasSecond {
		end, err := strconv.Atoi(second)
		if err != nil || len(second) != 2 && len(second) != 4 {
			return 0, fmt.Errorf("invalid tax year %q", label)
		}
		if end%100 != (start+1)%100 {
			return 0, fmt.Errorf("tax year %q does not span consecutive years", label)
		}
	}
	return start, nil
}
