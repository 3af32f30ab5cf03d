package timeparse

import (
	"errors"
	"testing"
	"time"
)

func TestInstant_Formats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		prec Precision
	}{
		{
			name: "epoch seconds",
			raw:  "1704105000",
			want: time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
			prec: PrecisionSecond,
		},
		{
			name: "epoch fractional",
			raw:  "1704105000.5",
			want: time.Date(2024, 1, 1, 10, 30, 0, 500000000, time.UTC),
			prec: PrecisionSubSecond,
		},
		{
			name: "iso8601",
			raw:  "2024-01-01T12:30:45",
			want: time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC),
			prec: PrecisionSecond,
		},
		{
			name: "iso8601 with Z",
			raw:  "2024-01-01T12:30:45Z",
			want: time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC),
			prec: PrecisionSecond,
		},
		{
			name: "iso8601 fractional with Z",
			raw:  "2024-01-01T12:30:45.123456Z",
			want: time.Date(2024, 1, 1, 12, 30, 45, 123456000, time.UTC),
			prec: PrecisionSubSecond,
		},
		{
			name: "iso8601 offset normalized to UTC",
			raw:  "2024-01-01T12:30:45+02:00",
			want: time.Date(2024, 1, 1, 10, 30, 45, 0, time.UTC),
			prec: PrecisionSecond,
		},
		{
			name: "space separated",
			raw:  "2024-01-01 12:30:45",
			want: time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC),
			prec: PrecisionSecond,
		},
		{
			name: "space separated fractional",
			raw:  "2024-01-01 12:30:45.5",
			want: time.Date(2024, 1, 1, 12, 30, 45, 500000000, time.UTC),
			prec: PrecisionSubSecond,
		},
		{
			name: "bare date is midnight",
			raw:  "2024-01-01",
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			prec: PrecisionDay,
		},
		{
			name: "surrounding whitespace",
			raw:  "  2024-01-01  ",
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			prec: PrecisionDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, prec, err := Instant(tt.raw)
			if err != nil {
				t.Fatalf("Instant(%q) failed: %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Instant(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			if prec != tt.prec {
				t.Errorf("Instant(%q) precision = %d, want %d", tt.raw, prec, tt.prec)
			}
		})
	}
}

func TestInstant_Invalid(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2024-13-45", "tomorrow", "12:30:45"} {
		if _, _, err := Instant(raw); err == nil {
			t.Errorf("Instant(%q) should fail", raw)
		}
	}
}

func TestInstant_ParseErrorDetails(t *testing.T) {
	_, _, err := Instant("garbage")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Raw != "garbage" {
		t.Errorf("Raw = %q, want %q", perr.Raw, "garbage")
	}
	if len(perr.Tried) == 0 {
		t.Error("expected tried patterns in error")
	}
}

func TestInstant_PureIntegerIsEpochNotDate(t *testing.T) {
	// A compact numeric string must deterministically resolve to
	// epoch seconds, never be misread as a date.
	got, _, err := Instant("20240101")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Unix(20240101, 0).UTC()
	if !got.Equal(want) {
		t.Errorf("Instant(\"20240101\") = %v, want epoch %v", got, want)
	}
}

func TestDays(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"5d", 5, false},
		{"0d", 0, false},
		{"365d", 365, false},
		{" 5d ", 5, false},
		{"5", 0, true},
		{"d", 0, true},
		{"5w", 0, true},
		{"5h", 0, true},
		{"-1d", 0, true},
		{"5.5d", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := Days(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Days(%q) should fail", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("Days(%q) failed: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Days(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
