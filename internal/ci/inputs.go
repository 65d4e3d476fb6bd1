package ci

import (
	"fmt"
	"os"
	"strings"
)

// Inputs supplies named action input parameters.
type Inputs interface {
	// Get returns the trimmed value of an input, or "" when absent.
	Get(name string) string
	// Require returns the trimmed value of an input and errors when it is
	// missing or blank.
	Require(name string) (string, error)
}

// EnvInputs reads inputs from the INPUT_* environment variables the actions
// runner exposes to a step.
type EnvInputs struct{}

func NewEnvInputs() EnvInputs {
	return EnvInputs{}
}

func (EnvInputs) Get(name string) string {
	return strings.TrimSpace(os.Getenv(inputEnvName(name)))
}

func (e EnvInputs) Require(name string) (string, error) {
	value := e.Get(name)
	if value == "" {
		return "", fmt.Errorf("input required and not supplied: %s", name)
	}
	return value, nil
}

// The runner replaces spaces with underscores and uppercases the rest;
// hyphens pass through unchanged.
func inputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}
