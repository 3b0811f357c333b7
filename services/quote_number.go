package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// FormatQuoteNumber constructs a quote number from its components.
// Format: {prefix}-{YYYYMM}-{sequence}, e.g. GQ-202609-0007. The year-month
// segment is display-only; the sequence increases across months so numbers
// for a prefix never repeat.
func FormatQuoteNumber(prefix string, now time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, now.Format("200601"), sequence)
}

// ParseSequence extracts the trailing sequence from a quote number generated
// with the same prefix. Returns 0 when the number does not match.
func ParseSequence(prefix, quoteNumber string) int {
	if !strings.HasPrefix(quoteNumber, prefix+"-") {
		return 0
	}
	idx := strings.LastIndex(quoteNumber, "-")
	if idx < 0 || idx == len(quoteNumber)-1 {
		return 0
	}
	seq, err := strconv.Atoi(quoteNumber[idx+1:])
	if err != nil {
		return 0
	}
	return seq
}

// NextSequence returns one past the highest sequence among existing quote
// numbers for a prefix. Sequences, not counts: deleted quotes never free a
// number for reuse.
func NextSequence(prefix string, existing []string) int {
	max := 0
	for _, qn := range existing {
		if seq := ParseSequence(prefix, qn); seq > max {
			max = seq
		}
	}
	return max + 1
}

// GenerateQuoteNumber creates the next quote number. The caller wraps this
// and the subsequent insert in one transaction so concurrent creates cannot
// draw the same number.
func GenerateQuoteNumber(app core.App, prefix string, now time.Time) (string, error) {
	records, err := app.FindRecordsByFilter(
		"quotes",
		"quote_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "-%"},
	)
	if err != nil {
		return "", fmt.Errorf("quote number lookup for prefix %q: %w", prefix, err)
	}

	existing := make([]string, 0, len(records))
	for _, r := range records {
		existing = append(existing, r.GetString("quote_number"))
	}

	return FormatQuoteNumber(prefix, now, NextSequence(prefix, existing)), nil
}
