package repository

import (
	"strings"
	"testing"
)

func TestYearExprDefaultsToSQLite(t *testing.T) {
	got := yearExpr(nil, "invoices.created_at")
	want := "CAST(strftime('%Y', invoices.created_at) AS INTEGER)"
	if got != want {
		t.Fatalf("sqlite year expr mismatch, want %s got %s", want, got)
	}
}

func TestMonthAndDayExpr(t *testing.T) {
	if got := monthExpr(nil, "created_at"); !strings.Contains(got, "'%m'") {
		t.Fatalf("sqlite month expr should use strftime %%m, got %s", got)
	}
	if got := dayExpr(nil, "created_at"); !strings.Contains(got, "'%d'") {
		t.Fatalf("sqlite day expr should use strftime %%d, got %s", got)
	}
}

func TestKeywordCondition(t *testing.T) {
	condition, args := keywordCondition(nil, "go", "title", "author")
	if condition != "title LIKE ? OR author LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
	if len(args) != 2 {
		t.Fatalf("arg count want 2 got %d", len(args))
	}
	if args[0] != "%go%" || args[1] != "%go%" {
		t.Fatalf("unexpected args: %v", args)
	}

	condition, args = keywordCondition(nil, "go", "title", "  ")
	if condition != "title LIKE ?" || len(args) != 1 {
		t.Fatalf("blank columns should be skipped, got %s with %d args", condition, len(args))
	}
}
