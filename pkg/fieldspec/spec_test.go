package fieldspec

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/testsupport"
)

func intPtr(v int) *int { return &v }

func TestLoadFile_YAML(t *testing.T) {
	doc, err := LoadFile(context.Background(), filepath.Join("testdata", "fields.yaml"), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Document{Fields: []Spec{
		{
			Name:        "amount",
			Label:       "Enter a number: ",
			Kind:        field.KindNumber,
			InputMode:   "decimal",
			Explanation: DefaultNumberExplanation,
		},
		{
			Name:        "contact",
			Label:       "Contact email: ",
			Kind:        field.KindEmail,
			DelayMs:     intPtr(150),
			InputMode:   "email",
			Explanation: DefaultEmailExplanation,
		},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadYAML([]byte("fields:\n  - name: a\n    kind: number\n    colour: red\n"))
	if err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadYAML_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"empty":       "fields: []\n",
		"no name":     "fields:\n  - kind: number\n",
		"bad kind":    "fields:\n  - name: a\n    kind: date\n",
		"bad pattern": "fields:\n  - name: a\n    kind: number\n    pattern: \"[0-\"\n",
		"negative":    "fields:\n  - name: a\n    kind: email\n    delay_ms: -1\n",
		"duplicate":   "fields:\n  - name: a\n    kind: number\n  - name: a\n    kind: email\n",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadYAML([]byte(payload)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := LoadYAML([]byte("fields:\n  - name: a\n    kind: date\n"))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestLoadFile_OpenAPI(t *testing.T) {
	doc, err := LoadFile(context.Background(), filepath.Join("testdata", "profile.openapi.yaml"), "Profile")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Document{Fields: []Spec{
		{
			Name:        "weight",
			Label:       "Enter a number: ",
			Kind:        field.KindNumber,
			InputMode:   "decimal",
			Explanation: "Use digits, for example <em>72.5</em>",
		},
		{
			Name:        "email",
			Label:       "Work email: ",
			Kind:        field.KindEmail,
			DelayMs:     intPtr(500),
			InputMode:   "email",
			Explanation: DefaultEmailExplanation,
		},
		{
			Name:        "score",
			Label:       "Enter a number: ",
			Kind:        field.KindNumber,
			Pattern:     "[0-9]+",
			InputMode:   "decimal",
			Explanation: DefaultNumberExplanation,
			AllowEmpty:  true,
		},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPI_SchemaSelection(t *testing.T) {
	data := testsupport.MustReadFile(t, filepath.Join("testdata", "profile.openapi.yaml"))

	if _, err := FromOpenAPI(context.Background(), data, ""); err != nil {
		t.Fatalf("single schema should be picked implicitly: %v", err)
	}
	if _, err := FromOpenAPI(context.Background(), data, "Missing"); err == nil {
		t.Fatalf("expected missing schema error")
	}
	if _, err := FromOpenAPI(context.Background(), nil, ""); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestSpec_Build(t *testing.T) {
	clock := testsupport.NewManualScheduler()
	var settled []string

	email, err := Spec{Name: "contact", Kind: field.KindEmail, DelayMs: intPtr(100)}.Build(
		WithScheduler(clock),
		WithOnDisplay(func(name, value string) { settled = append(settled, name+"="+value) }),
	)
	if err != nil {
		t.Fatalf("build email: %v", err)
	}
	defer email.Close()

	email.Edit("ada@example.com")
	clock.Advance(100 * time.Millisecond)
	if email.Value() != "ada@example.com" {
		t.Fatalf("email value = %q", email.Value())
	}
	if diff := cmp.Diff([]string{"contact=ada@example.com"}, settled); diff != "" {
		t.Fatalf("settled mismatch (-want +got):\n%s", diff)
	}

	number, err := Spec{Name: "n", Kind: "NUMBER", Pattern: "[0-9]+"}.Build()
	if err != nil {
		t.Fatalf("build number: %v", err)
	}
	if number.Kind() != field.KindNumber {
		t.Fatalf("kind = %s", number.Kind())
	}
	number.Edit("1.5")
	if res := number.Blur(); !res.Refocus {
		t.Fatalf("override pattern should reject decimals")
	}

	if _, err := (Spec{Name: "x", Kind: "color"}).Build(); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestSpec_Delay(t *testing.T) {
	if got := (Spec{}).Delay(); got != field.DefaultEmailDelay {
		t.Fatalf("default delay = %v", got)
	}
	if got := (Spec{DelayMs: intPtr(0)}).Delay(); got != 0 {
		t.Fatalf("zero delay = %v", got)
	}
}

func TestDocument_Lookup(t *testing.T) {
	doc := Document{Fields: []Spec{{Name: "a", Kind: field.KindNumber}}}
	if _, ok := doc.Lookup("a"); !ok {
		t.Fatalf("expected lookup hit")
	}
	if _, ok := doc.Lookup("b"); ok {
		t.Fatalf("expected lookup miss")
	}
}
