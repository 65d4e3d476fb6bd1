package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/translate-ci/glossary-action/internal/ci"
	"github.com/translate-ci/glossary-action/internal/cli"
	"github.com/translate-ci/glossary-action/internal/config"
	"github.com/translate-ci/glossary-action/internal/deploy"
	"github.com/translate-ci/glossary-action/internal/glossary"
	"github.com/translate-ci/glossary-action/internal/logging"
)

// errNoLanguageInput is the dispatch-level failure: neither a language pair
// nor a codes set was supplied.
var errNoLanguageInput = errors.New("no appropriate language code input")

func runDeploy(args []string) int {
	fs := flag.NewFlagSet("deploy", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	inputs := ci.NewEnvInputs()
	reporter := ci.NewWorkflowReporter()

	token := inputs.Get("access-token")
	client := glossary.NewClient(cfg.Endpoint(), token, cfg.HTTPTimeout(), logger)
	deployer := deploy.New(client, inputs, reporter, logger)

	languageCodes, err := selectLanguageCodes(inputs)
	if err != nil {
		reporter.SetFailed(err.Error())
		return 1
	}

	op, err := deployer.Run(context.Background(), languageCodes...)
	if err != nil {
		logger.Error().Err(err).Msg("glossary deploy failed")
		reporter.SetFailed(err.Error())
		return 1
	}

	state := op.Metadata.State
	logger.Info().
		Str("operation", op.Name).
		Str("state", state).
		Msg("glossary deploy finished")
	reporter.Info(fmt.Sprintf("glossary create operation state: %s", state))

	if state == glossary.StateRunning {
		reporter.SetOutput("operation-name", op.Name)
	}
	return 0
}

// selectLanguageCodes chooses pair mode when both pair inputs are set, set
// mode when the codes-set input is, and fails otherwise. Pair mode passes the
// target code first.
func selectLanguageCodes(inputs ci.Inputs) ([]string, error) {
	target := inputs.Get("target-language")
	source := inputs.Get("source-language")
	codesSet := inputs.Get("language-codes-set")

	switch {
	case target != "" && source != "":
		return []string{target, source}, nil
	case codesSet != "":
		return []string{codesSet}, nil
	default:
		return nil, errNoLanguageInput
	}
}
