package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-11-10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("10/11/2024"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if got := ParseDateDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default")
	}
	if got := ParseDateDefault("2024-01-23", def); got.Equal(def) {
		t.Fatalf("expected parsed date, got default")
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2025, 6, 1, 15, 4, 5, 0, time.FixedZone("X", 3600))
	got := Midnight(in)
	if got.Hour() != 0 || got.Location() != time.UTC {
		t.Fatalf("unexpected midnight %v", got)
	}
}
