package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type fragmentsCmd struct {
	grep     string
	jsonPath string
	dump     bool
}

func (*fragmentsCmd) Name() string     { return "fragments" }
func (*fragmentsCmd) Synopsis() string { return "prints the text fragments of a document" }
func (*fragmentsCmd) Usage() string {
	return `fragments [-grep <text>] [-json] <document>:
  prints each text fragment of the document with its index, one per line.

  Indexes are counted over all pages, as seen by the parsers: use them to
  measure the offset between an anchor and a value.
  With -json, prints the pages as a JSON dump instead, readable by the other
  commands.
`
}

func (c *fragmentsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.grep, "grep", "", "only print the fragments containing this text")
	f.StringVar(&c.jsonPath, "jsonpath", envString(EnvJSONPath, "$"), "jsonpath expression selecting the pages of a JSON fragments dump. Defaults to $"+EnvJSONPath)
	f.BoolVar(&c.dump, "json", false, "print the pages as a JSON fragments dump")
}

func (c *fragmentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := openDocument(f, c.jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading document: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.dump {
		enc := json.NewEncoder(stdout)
		if err := enc.Encode(doc.Pages); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing fragments: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	for i, frag := range doc.Pages.Flatten() {
		if c.grep != "" && !strings.Contains(frag, c.grep) {
			continue
		}
		fmt.Fprintf(stdout, "%d\t%s\n", i, frag)
	}
	return subcommands.ExitSuccess
}
