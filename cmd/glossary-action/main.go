package main

import (
	"os"

	"github.com/translate-ci/glossary-action/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
