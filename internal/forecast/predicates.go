package forecast

import (
	"regexp"
	"strings"
)

var (
	currencyAmountPattern = regexp.MustCompile(`(?i)(?:[$€£₽₩¥]\s?\d[\d,\s]*(?:\.\d+)?|\d[\d,]*(?:\.\d+)?\s?(?:[$€£₽₩¥]|rub|usd|eur|gbp|krw|won|руб))`)
	percentagePattern     = regexp.MustCompile(`\d+(?:[.,]\d+)?\s?%`)
	calendarDatePattern   = regexp.MustCompile(`(?i)\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}[./]\d{1,2}[./]\d{2,4}\b|\b\d{1,2}/\d{1,2}\b|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}\b|\b\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
)

// hasCurrencyAmount reports whether text mentions a number tied to a currency code or sign.
func hasCurrencyAmount(text string) bool {
	return currencyAmountPattern.MatchString(text)
}

func hasPercentage(text string) bool {
	return percentagePattern.MatchString(text)
}

// hasCalendarDate accepts ISO dates, numeric day/month forms and "Oct 25" / "25 October".
func hasCalendarDate(text string) bool {
	return calendarDatePattern.MatchString(text)
}

func isQuantified(text string) bool {
	return hasCurrencyAmount(text) || hasPercentage(text) || hasCalendarDate(text)
}

func hasDigit(text string) bool {
	return strings.ContainsAny(text, "0123456789")
}
