package fieldspec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLintOpenAPI_ReportsViolations(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "lint.openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	got, err := LintOpenAPI(context.Background(), data)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	want := []Violation{
		{Location: "components.schemas.Order.properties.contact", Message: "kind phone is not number or email"},
		{Location: "components.schemas.Order.properties.note", Message: "allow_empty yes is not a boolean"},
		{Location: "components.schemas.Order.properties.quantity", Message: "delay_ms -5 must not be negative"},
		{Location: "components.schemas.Order.properties.quantity", Message: `unsupported key "colour"`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLintOpenAPI_CleanDocument(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "profile.openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	got, err := LintOpenAPI(context.Background(), data)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestLintOpenAPI_EmptyInput(t *testing.T) {
	if _, err := LintOpenAPI(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
