package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	printSummary(&out, "members.csv", domain.BatchSummary{
		Total:      3,
		Successful: 1,
		Failed:     1,
		Duplicates: 1,
		Errors: []domain.RowError{
			{Row: 2, Field: "email", Message: "invalid email format"},
			{Row: 3, Field: "email", Message: "email asha@example.com is duplicated within this file (first seen in row 1)"},
		},
	})

	got := out.String()
	for _, want := range []string{"Import of members.csv", "SUCCESSFUL", "2 row errors", "invalid email format", "first seen in row 1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSummaryWithoutErrors(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	printSummary(&out, "members.csv", domain.BatchSummary{Total: 1, Successful: 1, Errors: []domain.RowError{}})

	if !strings.Contains(out.String(), "No row errors.") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestUsersCmdRequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"users"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing --file")
	}
}
