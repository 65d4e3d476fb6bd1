package ci

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Reporter is the log/output sink of the surrounding CI runtime.
type Reporter interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
	SetOutput(name, value string)
	SetFailed(msg string)
}

// WorkflowReporter emits GitHub workflow commands. Outputs go to the
// GITHUB_OUTPUT file when the runner provides one, otherwise to the legacy
// ::set-output command.
type WorkflowReporter struct {
	out        io.Writer
	outputPath string

	mu     sync.Mutex
	failed bool
}

func NewWorkflowReporter() *WorkflowReporter {
	return &WorkflowReporter{
		out:        os.Stdout,
		outputPath: strings.TrimSpace(os.Getenv("GITHUB_OUTPUT")),
	}
}

// NewWorkflowReporterWithWriter is a test seam.
func NewWorkflowReporterWithWriter(out io.Writer, outputPath string) *WorkflowReporter {
	return &WorkflowReporter{
		out:        out,
		outputPath: outputPath,
	}
}

func (r *WorkflowReporter) Info(msg string) {
	fmt.Fprintln(r.out, msg)
}

func (r *WorkflowReporter) Warning(msg string) {
	fmt.Fprintf(r.out, "::warning::%s\n", escapeData(msg))
}

func (r *WorkflowReporter) Error(msg string) {
	fmt.Fprintf(r.out, "::error::%s\n", escapeData(msg))
}

func (r *WorkflowReporter) SetOutput(name, value string) {
	if r.outputPath != "" {
		if err := appendOutputFile(r.outputPath, name, value); err == nil {
			return
		}
		fmt.Fprintf(r.out, "::warning::failed to write %s to GITHUB_OUTPUT, falling back to set-output\n", escapeData(name))
	}
	fmt.Fprintf(r.out, "::set-output name=%s::%s\n", escapeProperty(name), escapeData(value))
}

func (r *WorkflowReporter) SetFailed(msg string) {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()
	r.Error(msg)
}

// Failed reports whether SetFailed has been called.
func (r *WorkflowReporter) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

func appendOutputFile(path, name, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.ContainsAny(value, "\r\n") {
		const delimiter = "ghadelimiter_glossary_action"
		_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
		return err
	}
	_, err = fmt.Fprintf(f, "%s=%s\n", name, value)
	return err
}

func escapeData(s string) string {
	replacer := strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	)
	return replacer.Replace(s)
}

func escapeProperty(s string) string {
	replacer := strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
		":", "%3A",
		",", "%2C",
	)
	return replacer.Replace(s)
}
