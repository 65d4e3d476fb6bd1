package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/translate-ci/glossary-action/internal/ci"
	"github.com/translate-ci/glossary-action/internal/globaltime"
	"github.com/translate-ci/glossary-action/internal/glossary"
	requestschema "github.com/translate-ci/glossary-action/schema"
)

// MaxWaitSeconds caps the optional pause before the single status check.
const MaxWaitSeconds = 300

var (
	// ErrNoLanguageCodes is returned when Run is called with no language arguments.
	ErrNoLanguageCodes = errors.New("no language codes provided")
	// ErrTooManyInputs is returned when Run is called with more than two
	// language arguments, which no mode can represent.
	ErrTooManyInputs = errors.New("too many language code inputs")
	// ErrMissingMetadata is returned when the operation snapshot lacks the
	// metadata block carrying its state.
	ErrMissingMetadata = errors.New("operation response missing metadata")
)

// GlossaryAPI is the remote surface the deployer drives.
type GlossaryAPI interface {
	Delete(ctx context.Context, projectID, glossaryName string) error
	Create(ctx context.Context, projectID string, req glossary.Request) (string, error)
	GetOperation(ctx context.Context, operationName string) (*glossary.Operation, error)
}

// Deployer replaces a remote glossary: delete the old one, create a new one
// from a bucket file, wait a bounded time, inspect the operation once.
type Deployer struct {
	api      GlossaryAPI
	inputs   ci.Inputs
	reporter ci.Reporter
	logger   zerolog.Logger
}

func New(api GlossaryAPI, inputs ci.Inputs, reporter ci.Reporter, logger zerolog.Logger) *Deployer {
	return &Deployer{
		api:      api,
		inputs:   inputs,
		reporter: reporter,
		logger:   logger,
	}
}

// Run executes the deploy sequence. One language argument selects set mode
// (a comma-joined list of codes); two select pair mode with the target code
// first and the source code second.
func (d *Deployer) Run(ctx context.Context, languageCodes ...string) (*glossary.Operation, error) {
	if d == nil || d.api == nil {
		return nil, fmt.Errorf("deployer is not initialized")
	}
	if len(languageCodes) == 0 {
		return nil, ErrNoLanguageCodes
	}
	if len(languageCodes) > 2 {
		return nil, ErrTooManyInputs
	}
	started := globaltime.UTC()

	projectID, err := d.inputs.Require("project-id")
	if err != nil {
		return nil, err
	}
	bucket, err := d.inputs.Require("bucket-name")
	if err != nil {
		return nil, err
	}
	glossaryName, err := d.inputs.Require("glossary-name")
	if err != nil {
		return nil, err
	}
	fileName, err := d.inputs.Require("glossary-file-name")
	if err != nil {
		return nil, err
	}

	if err := d.api.Delete(ctx, projectID, glossaryName); err != nil {
		return nil, err
	}

	req, err := d.buildRequest(projectID, bucket, glossaryName, fileName, languageCodes)
	if err != nil {
		return nil, err
	}

	operationName, err := d.api.Create(ctx, projectID, req)
	if err != nil {
		return nil, err
	}
	d.reporter.Info(fmt.Sprintf("glossary create operation started: %s", operationName))

	if wait := d.resolveWaitSeconds(); wait > 0 {
		d.logger.Info().
			Int("seconds", wait).
			Msg("waiting before operation status check")
		if err := globaltime.Sleep(ctx, time.Duration(wait)*time.Second); err != nil {
			return nil, fmt.Errorf("wait interrupted: %w", err)
		}
	}

	op, err := d.api.GetOperation(ctx, operationName)
	if err != nil {
		return nil, err
	}
	if op.Metadata == nil {
		return nil, ErrMissingMetadata
	}
	if op.Metadata.State == glossary.StateFailed {
		msg := "unknown remote failure"
		if op.Error != nil && strings.TrimSpace(op.Error.Message) != "" {
			msg = strings.TrimSpace(op.Error.Message)
		}
		d.logger.Error().
			Str("operation", op.Name).
			Str("message", msg).
			Msg("glossary create operation failed remotely")
		return nil, fmt.Errorf("create operation failed: %s", msg)
	}

	d.logger.Info().
		Str("operation", op.Name).
		Str("state", op.Metadata.State).
		Dur("duration", globaltime.UTC().Sub(started)).
		Msg("glossary deploy sequence completed")
	return op, nil
}

func (d *Deployer) buildRequest(projectID, bucket, glossaryName, fileName string, languageCodes []string) (glossary.Request, error) {
	name := fmt.Sprintf("projects/%s/locations/%s/glossaries/%s", projectID, glossary.Location, glossaryName)
	sourceFileURI := fmt.Sprintf("gs://%s/%s", bucket, fileName)

	var req glossary.Request
	if len(languageCodes) == 2 {
		// Target first, source second: the dispatch layer passes them in
		// that order.
		req = glossary.NewPairRequest(name, sourceFileURI, languageCodes[1], languageCodes[0])
	} else {
		req = glossary.NewCodesSetRequest(name, sourceFileURI, splitCodes(languageCodes[0]))
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return glossary.Request{}, fmt.Errorf("marshal glossary request: %w", err)
	}
	if err := requestschema.ValidateCreateRequest(payload); err != nil {
		return glossary.Request{}, fmt.Errorf("glossary request rejected before send: %w", err)
	}
	return req, nil
}

func (d *Deployer) resolveWaitSeconds() int {
	raw := d.inputs.Get("wait-time")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		d.reporter.Warning(fmt.Sprintf("ignoring invalid wait-time %q, defaulting to 0", raw))
		return 0
	}
	if seconds < 0 {
		return 0
	}
	if seconds > MaxWaitSeconds {
		d.reporter.Warning(fmt.Sprintf("wait-time %d exceeds the maximum, clamping to %d seconds", seconds, MaxWaitSeconds))
		return MaxWaitSeconds
	}
	return seconds
}

func splitCodes(joined string) []string {
	parts := strings.Split(joined, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}
