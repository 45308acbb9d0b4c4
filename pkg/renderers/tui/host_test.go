package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/fieldspec"
	"github.com/goliatone/go-formfield/pkg/render"
)

type stubDriver struct {
	inputs       []string
	prompts      []InputConfig
	infoMessages []string
	err          error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg)
	if s.err != nil {
		return "", s.err
	}
	if len(s.inputs) == 0 {
		return "", errors.New("stub: no scripted input left")
	}
	value := s.inputs[0]
	s.inputs = s.inputs[1:]
	return value, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestHost_NumberRepromptsOnceThenAcceptsValid(t *testing.T) {
	driver := &stubDriver{inputs: []string{"12a", "12.5"}}
	host := NewHost(WithPromptDriver(driver))

	result, err := host.RunWidget(context.Background(), fieldspec.Spec{Name: "amount", Kind: field.KindNumber}, field.NewNumber())
	if err != nil {
		t.Fatalf("run widget: %v", err)
	}

	want := FieldResult{Name: "amount", Value: "12.5", State: field.StateClean}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if len(driver.prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(driver.prompts))
	}
	if got := driver.infoMessages; len(got) != 1 || got[0] != "Please make sure you've entered a number" {
		t.Fatalf("unexpected info messages: %#v", got)
	}
	second := driver.prompts[1]
	if second.Default != "12a" {
		t.Fatalf("expected re-prompt to keep the rejected value, got %q", second.Default)
	}
	if second.Help == "" {
		t.Fatalf("expected re-prompt help to carry the explanation")
	}
	if second.Message != "Enter a number:" {
		t.Fatalf("unexpected prompt message %q", second.Message)
	}
}

func TestHost_NumberSecondInvalidSubmissionIsAccepted(t *testing.T) {
	driver := &stubDriver{inputs: []string{"12a", "x"}}
	host := NewHost(WithPromptDriver(driver))

	result, err := host.RunWidget(context.Background(), fieldspec.Spec{Name: "amount", Kind: field.KindNumber}, field.NewNumber())
	if err != nil {
		t.Fatalf("run widget: %v", err)
	}
	if result.Value != "x" || result.State != field.StateInvalidHidden {
		t.Fatalf("unexpected result %#v", result)
	}
	if len(driver.prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(driver.prompts))
	}
	if got := driver.infoMessages; len(got) != 1 || got[0] != "Please make sure you've entered a number" {
		t.Fatalf("expected the explanation once, got %#v", got)
	}
}

func TestHost_NumberInvalidThenInvalidAgainPrintsOnce(t *testing.T) {
	driver := &stubDriver{inputs: []string{"12a", "12b"}}
	host := NewHost(WithPromptDriver(driver))

	w := field.NewNumber()
	result, err := host.RunWidget(context.Background(), fieldspec.Spec{Name: "amount", Kind: field.KindNumber}, w)
	if err != nil {
		t.Fatalf("run widget: %v", err)
	}
	if result.Value != "12b" || result.State != field.StateInvalidHidden {
		t.Fatalf("unexpected result %#v", result)
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("expected a single explanation, got %#v", driver.infoMessages)
	}
	if driver.prompts[0].Help != "" {
		t.Fatalf("first prompt should carry no help, got %q", driver.prompts[0].Help)
	}
}

func TestHost_NumberValidFirstSubmission(t *testing.T) {
	driver := &stubDriver{inputs: []string{"-12"}}
	host := NewHost(WithPromptDriver(driver))

	result, err := host.RunWidget(context.Background(), fieldspec.Spec{Name: "amount", Kind: field.KindNumber}, field.NewNumber())
	if err != nil {
		t.Fatalf("run widget: %v", err)
	}
	if result.Value != "-12" || result.State != field.StateClean {
		t.Fatalf("unexpected result %#v", result)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("expected no info messages, got %#v", driver.infoMessages)
	}
}

func TestHost_EmailNeverReprompts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"nope"}}
	host := NewHost(WithPromptDriver(driver))

	w := field.NewEmail()
	defer w.Close()
	result, err := host.RunWidget(context.Background(), fieldspec.Spec{Name: "contact", Kind: field.KindEmail}, w)
	if err != nil {
		t.Fatalf("run widget: %v", err)
	}
	if result.Value != "nope" || result.State != field.StateInvalidHidden {
		t.Fatalf("unexpected result %#v", result)
	}
	if len(driver.prompts) != 1 {
		t.Fatalf("expected a single prompt, got %d", len(driver.prompts))
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("a field that never refocuses should print nothing, got %#v", driver.infoMessages)
	}
}

func TestHost_AbortIsWrapped(t *testing.T) {
	driver := &stubDriver{err: ErrAborted}
	host := NewHost(WithPromptDriver(driver))

	_, err := host.RunWidget(context.Background(), fieldspec.Spec{Name: "amount", Kind: field.KindNumber}, field.NewNumber())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestHost_NilDriver(t *testing.T) {
	var host *Host
	if _, err := host.RunWidget(context.Background(), fieldspec.Spec{}, field.NewNumber()); !errors.Is(err, ErrNoDriver) {
		t.Fatalf("expected ErrNoDriver, got %v", err)
	}
}

func TestHost_RunBuildsEachSpec(t *testing.T) {
	driver := &stubDriver{inputs: []string{"7", "ada@example.com"}}
	host := NewHost(WithPromptDriver(driver))

	results, err := host.Run(context.Background(), []fieldspec.Spec{
		{Name: "age", Kind: field.KindNumber},
		{Name: "contact", Kind: field.KindEmail},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []FieldResult{
		{Name: "age", Value: "7", State: field.StateClean},
		{Name: "contact", Value: "ada@example.com", State: field.StateClean},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestHost_RunRejectsInvalidSpec(t *testing.T) {
	host := NewHost(WithPromptDriver(&stubDriver{}))
	if _, err := host.Run(context.Background(), []fieldspec.Spec{{Name: "x", Kind: "date"}}); !errors.Is(err, fieldspec.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRenderer_EncodesResults(t *testing.T) {
	driver := &stubDriver{inputs: []string{"3"}}
	renderer := New(WithPromptDriver(driver))

	spec := fieldspec.Spec{Name: "qty", Kind: field.KindNumber}
	view := render.NewView(spec, field.NewNumber())

	out, err := renderer.Render(context.Background(), []render.View{view}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var payload struct {
		Fields []FieldResult `json:"fields"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []FieldResult{{Name: "qty", Value: "3", State: field.StateClean}}
	if diff := cmp.Diff(want, payload.Fields); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if renderer.Name() != "tui" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
}

func TestPlainText_StripsMarkup(t *testing.T) {
	got := PlainText("Please make sure you've entered a <em>number</em>")
	if got != "Please make sure you've entered a number" {
		t.Fatalf("unexpected plain text %q", got)
	}
}
