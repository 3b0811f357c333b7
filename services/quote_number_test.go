package services

import (
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"

	"gatequote/testhelpers"
)

func TestFormatQuoteNumber(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		now      time.Time
		sequence int
		want     string
	}{
		{
			name:     "basic",
			prefix:   "GQ",
			now:      time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC),
			sequence: 7,
			want:     "GQ-202609-0007",
		},
		{
			name:     "sequence over four digits",
			prefix:   "GQ",
			now:      time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			sequence: 12345,
			want:     "GQ-202601-12345",
		},
		{
			name:     "custom prefix",
			prefix:   "ACME",
			now:      time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC),
			sequence: 1,
			want:     "ACME-202512-0001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatQuoteNumber(tt.prefix, tt.now, tt.sequence)
			if got != tt.want {
				t.Errorf("FormatQuoteNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		quoteNumber string
		want        int
	}{
		{"valid", "GQ", "GQ-202609-0007", 7},
		{"different month same prefix", "GQ", "GQ-202512-0042", 42},
		{"wrong prefix", "GQ", "ACME-202609-0007", 0},
		{"prefix is a prefix of another", "GQ", "GQX-202609-0007", 0},
		{"no sequence segment", "GQ", "GQ-202609", 202609},
		{"garbage", "GQ", "not a quote number", 0},
		{"empty", "GQ", "", 0},
		{"non numeric sequence", "GQ", "GQ-202609-abcd", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSequence(tt.prefix, tt.quoteNumber)
			if got != tt.want {
				t.Errorf("ParseSequence(%q, %q) = %d, want %d", tt.prefix, tt.quoteNumber, got, tt.want)
			}
		})
	}
}

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     int
	}{
		{"no existing quotes", nil, 1},
		{"sequential", []string{"GQ-202609-0001", "GQ-202609-0002"}, 3},
		{"gaps do not get reused", []string{"GQ-202609-0001", "GQ-202609-0009"}, 10},
		{"carries across months", []string{"GQ-202608-0004", "GQ-202609-0002"}, 5},
		{"ignores other prefixes", []string{"ACME-202609-0099", "GQ-202609-0001"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSequence("GQ", tt.existing)
			if got != tt.want {
				t.Errorf("NextSequence() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateQuoteNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestQuote(t, app, "GQ-202608-0004", "")

	got, err := GenerateQuoteNumber(app, "GQ", time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GenerateQuoteNumber() error = %v", err)
	}
	if got != "GQ-202609-0005" {
		t.Errorf("GenerateQuoteNumber() = %q, want GQ-202609-0005", got)
	}
}

func TestGenerateQuoteNumberPropagatesLookupFailure(t *testing.T) {
	// Bare app without the quotes collection: the lookup must fail loudly so
	// the caller's transaction rolls back instead of minting a duplicate 0001.
	app := pocketbase.NewWithConfig(pocketbase.Config{DefaultDataDir: t.TempDir()})
	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if _, err := GenerateQuoteNumber(app, "GQ", time.Now()); err == nil {
		t.Fatal("expected error when the quotes collection is missing")
	}
}
