package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/translate-ci/glossary-action/internal/ci"
)

func TestSelectLanguageCodesPrefersPairMode(t *testing.T) {
	t.Setenv("INPUT_TARGET-LANGUAGE", "en")
	t.Setenv("INPUT_SOURCE-LANGUAGE", "fr")
	t.Setenv("INPUT_LANGUAGE-CODES-SET", "en,fr,de")

	codes, err := selectLanguageCodes(ci.NewEnvInputs())
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(codes) != 2 || codes[0] != "en" || codes[1] != "fr" {
		t.Fatalf("expected [en fr], got: %v", codes)
	}
}

func TestSelectLanguageCodesFallsBackToSetMode(t *testing.T) {
	t.Setenv("INPUT_TARGET-LANGUAGE", "en")
	t.Setenv("INPUT_LANGUAGE-CODES-SET", "en,fr,de")

	codes, err := selectLanguageCodes(ci.NewEnvInputs())
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(codes) != 1 || codes[0] != "en,fr,de" {
		t.Fatalf("expected the joined codes set, got: %v", codes)
	}
}

func TestSelectLanguageCodesFailsWithoutAnyInput(t *testing.T) {
	t.Setenv("INPUT_TARGET-LANGUAGE", "")
	t.Setenv("INPUT_SOURCE-LANGUAGE", "")
	t.Setenv("INPUT_LANGUAGE-CODES-SET", "")

	_, err := selectLanguageCodes(ci.NewEnvInputs())
	if !errors.Is(err, errNoLanguageInput) {
		t.Fatalf("expected errNoLanguageInput, got: %v", err)
	}
}

const testOperationName = "projects/proj-1/locations/us-central1/operations/op-9"

// newGlossaryAPIServer fakes the three API calls of a deploy run, answering
// the operation status check with the given state.
func newGlossaryAPIServer(t *testing.T, finalState string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPost:
			fmt.Fprintf(w, `{"name":%q}`, testOperationName)
		case http.MethodGet:
			fmt.Fprintf(w, `{"name":%q,"metadata":{"state":%q}}`, testOperationName, finalState)
		default:
			t.Errorf("unexpected method: %s", r.Method)
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func setDeployEnv(t *testing.T, endpoint, outputPath string) {
	t.Helper()
	t.Setenv("TRANSLATE_API_ENDPOINT", endpoint)
	t.Setenv("GITHUB_OUTPUT", outputPath)
	t.Setenv("INPUT_ACCESS-TOKEN", "test-token")
	t.Setenv("INPUT_PROJECT-ID", "proj-1")
	t.Setenv("INPUT_BUCKET-NAME", "glossary-bucket")
	t.Setenv("INPUT_GLOSSARY-NAME", "my-glossary")
	t.Setenv("INPUT_GLOSSARY-FILE-NAME", "glossary.csv")
	t.Setenv("INPUT_TARGET-LANGUAGE", "en")
	t.Setenv("INPUT_SOURCE-LANGUAGE", "fr")
	t.Setenv("INPUT_LANGUAGE-CODES-SET", "")
	t.Setenv("INPUT_WAIT-TIME", "")
}

func TestRunDeployRunningStateSetsOperationNameOutput(t *testing.T) {
	server := newGlossaryAPIServer(t, "RUNNING")
	outputPath := filepath.Join(t.TempDir(), "output")
	setDeployEnv(t, server.URL, outputPath)

	if code := runDeploy(nil); code != 0 {
		t.Fatalf("unexpected exit code: %d", code)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read GITHUB_OUTPUT: %v", err)
	}
	want := "operation-name=" + testOperationName + "\n"
	if string(raw) != want {
		t.Fatalf("unexpected output file\nwant: %q\ngot:  %q", want, string(raw))
	}
}

func TestRunDeploySucceededStateSetsNoOutput(t *testing.T) {
	server := newGlossaryAPIServer(t, "SUCCEEDED")
	outputPath := filepath.Join(t.TempDir(), "output")
	setDeployEnv(t, server.URL, outputPath)

	if code := runDeploy(nil); code != 0 {
		t.Fatalf("unexpected exit code: %d", code)
	}

	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		raw, _ := os.ReadFile(outputPath)
		t.Fatalf("expected no outputs to be written, file holds: %q", string(raw))
	}
}

func TestRunDeployRemoteFailureReturnsNonZero(t *testing.T) {
	server := newGlossaryAPIServer(t, "FAILED")
	outputPath := filepath.Join(t.TempDir(), "output")
	setDeployEnv(t, server.URL, outputPath)

	if code := runDeploy(nil); code != 1 {
		t.Fatalf("expected exit code 1, got: %d", code)
	}
	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		t.Fatal("failed run must not write outputs")
	}
}

func TestRunDeployWithoutLanguageInputFailsBeforeNetwork(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	outputPath := filepath.Join(t.TempDir(), "output")
	setDeployEnv(t, server.URL, outputPath)
	t.Setenv("INPUT_TARGET-LANGUAGE", "")
	t.Setenv("INPUT_SOURCE-LANGUAGE", "")

	if code := runDeploy(nil); code != 1 {
		t.Fatalf("expected exit code 1, got: %d", code)
	}
	if calls != 0 {
		t.Fatalf("expected no network calls, got: %d", calls)
	}
}

func TestRunDeployRejectsUnknownCommand(t *testing.T) {
	if code := Run([]string{"bogus"}); code != 2 {
		t.Fatalf("expected exit code 2, got: %d", code)
	}
}

