package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type checkCmd struct {
	jsonPath string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "tells which broker parser accepts a document" }
func (*checkCmd) Usage() string {
	return `check [-jsonpath <expr>] <document>:
  prints the name of the broker parser that accepts the document.
  Exits with a failure if no parser does.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.jsonPath, "jsonpath", envString(EnvJSONPath, "$"), "jsonpath expression selecting the pages of a JSON fragments dump. Defaults to $"+EnvJSONPath)
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := openDocument(f, c.jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading document: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := parserFor(doc, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s\t%s\n", doc.Path, p.Name())
	return subcommands.ExitSuccess
}
