package ci

import (
	"strings"
	"testing"
)

func TestGetTrimsAndMapsEnvName(t *testing.T) {
	t.Setenv("INPUT_BUCKET-NAME", "  my-bucket  ")

	inputs := NewEnvInputs()
	if got := inputs.Get("bucket-name"); got != "my-bucket" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestGetReturnsEmptyWhenAbsent(t *testing.T) {
	inputs := NewEnvInputs()
	if got := inputs.Get("definitely-not-set"); got != "" {
		t.Fatalf("expected empty value, got: %q", got)
	}
}

func TestRequireFailsOnMissingInput(t *testing.T) {
	inputs := NewEnvInputs()
	_, err := inputs.Require("glossary-name")
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if !strings.Contains(err.Error(), "glossary-name") {
		t.Fatalf("error should name the input: %v", err)
	}
}

func TestRequireFailsOnBlankInput(t *testing.T) {
	t.Setenv("INPUT_PROJECT-ID", "   ")

	inputs := NewEnvInputs()
	if _, err := inputs.Require("project-id"); err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestRequireReturnsTrimmedValue(t *testing.T) {
	t.Setenv("INPUT_GLOSSARY-FILE-NAME", " glossary.csv ")

	inputs := NewEnvInputs()
	got, err := inputs.Require("glossary-file-name")
	if err != nil {
		t.Fatalf("require: %v", err)
	}
	if got != "glossary.csv" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestInputEnvNameReplacesSpaces(t *testing.T) {
	if got := inputEnvName("wait time"); got != "INPUT_WAIT_TIME" {
		t.Fatalf("unexpected env name: %q", got)
	}
	if got := inputEnvName("wait-time"); got != "INPUT_WAIT-TIME" {
		t.Fatalf("unexpected env name: %q", got)
	}
}
