package models

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("parse date failed: %v", err)
	}
	if d.Year != 2024 || d.Month != time.February || d.Day != 29 {
		t.Fatalf("unexpected date: %+v", d)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("unexpected format: %s", d.String())
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatalf("expected error for invalid month")
	}
	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestDateCompare(t *testing.T) {
	a := NewDate(2024, time.June, 10)
	b := NewDate(2024, time.June, 11)
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("expected %s before %s", a, b)
	}
	if !b.After(a) {
		t.Fatalf("expected %s after %s", b, a)
	}
	if !a.Equal(NewDate(2024, time.June, 10)) {
		t.Fatalf("expected equality")
	}
	if a.AddDays(21).String() != "2024-07-01" {
		t.Fatalf("unexpected add days result: %s", a.AddDays(21))
	}
}

func TestDaysBetweenInclusive(t *testing.T) {
	day := NewDate(2024, time.March, 15)
	if got := DaysBetweenInclusive(day, day); got != 1 {
		t.Fatalf("same day expected 1, got %d", got)
	}
	if got := DaysBetweenInclusive(day, day.AddDays(29)); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := DaysBetweenInclusive(day.AddDays(1), day); got != 0 {
		t.Fatalf("reversed range expected 0, got %d", got)
	}
	// 跨闰年二月
	if got := DaysBetweenInclusive(NewDate(2024, time.February, 1), NewDate(2024, time.March, 1)); got != 30 {
		t.Fatalf("leap february span expected 30, got %d", got)
	}
}

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{
		2024: true,
		2023: false,
		2000: true,
		1900: false,
	}
	for year, want := range cases {
		if got := IsLeapYear(year); got != want {
			t.Fatalf("IsLeapYear(%d)=%v, want %v", year, got, want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Fatalf("feb 2024 expected 29, got %d", got)
	}
	if got := DaysInMonth(2023, time.February); got != 28 {
		t.Fatalf("feb 2023 expected 28, got %d", got)
	}
	if got := DaysInMonth(2024, time.April); got != 30 {
		t.Fatalf("april expected 30, got %d", got)
	}
	if got := DaysInMonth(2024, time.December); got != 31 {
		t.Fatalf("december expected 31, got %d", got)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2025-01-05"); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}
	if d.String() != "2025-01-05" {
		t.Fatalf("unexpected scan result: %s", d)
	}
	if err := d.Scan("2025-01-05 00:00:00+07:00"); err != nil {
		t.Fatalf("scan datetime string failed: %v", err)
	}
	if d.String() != "2025-01-05" {
		t.Fatalf("unexpected datetime scan result: %s", d)
	}
	if err := d.Scan(time.Date(2025, time.August, 9, 23, 59, 0, 0, time.FixedZone("ICT", 7*3600))); err != nil {
		t.Fatalf("scan time failed: %v", err)
	}
	if d.String() != "2025-08-09" {
		t.Fatalf("unexpected time scan result: %s", d)
	}
	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("expected zero date after nil scan")
	}
}
