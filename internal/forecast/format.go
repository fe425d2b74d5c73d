package forecast

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "2006-01-02"

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders a whole currency amount with thousands separators, e.g. "1,250,000 RUB".
func formatAmount(value float64, currency string) string {
	return strings.TrimSpace(amountPrinter.Sprintf("%.0f %s", math.Round(math.Abs(value)), currency))
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
