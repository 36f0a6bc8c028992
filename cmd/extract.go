package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/renderer"
	"github.com/google/subcommands"
)

// output formats of the extract command.
var formats = []string{"jsonl", "yaml", "md", "term"}

type extractCmd struct {
	format   string
	jsonPath string
	broker   string
}

func (*extractCmd) Name() string     { return "extract" }
func (*extractCmd) Synopsis() string { return "extracts the activities of a broker document" }
func (*extractCmd) Usage() string {
	return `extract [-format jsonl|yaml|md|term] [-broker <name>] [-jsonpath <expr>] <document>:
  prints the buys, sells and dividends found in the document.

  The document is a PDF file, or a JSON dump of its fragments as printed
  by the fragments command.
`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "jsonl", "output format: jsonl, yaml, md (markdown) or term (markdown for the terminal)")
	f.StringVar(&c.jsonPath, "jsonpath", envString(EnvJSONPath, "$"), "jsonpath expression selecting the pages of a JSON fragments dump. Defaults to $"+EnvJSONPath)
	f.StringVar(&c.broker, "broker", envString(EnvBroker, ""), "force the broker parser instead of detecting it. Defaults to $"+EnvBroker)
}

func (c *extractCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !slices.Contains(formats, c.format) {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, want one of %v\n", c.format, formats)
		return subcommands.ExitUsageError
	}
	doc, err := openDocument(f, c.jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading document: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := parserFor(doc, c.broker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	res, err := p.Parse(doc.Pages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s with %s: %v\n", doc.Path, p.Name(), err)
		return subcommands.ExitFailure
	}
	if res.Status == pdfimport.StatusNoActivities {
		log.Printf("warning: %s: %s", doc.Path, res.Status)
	}

	switch c.format {
	case "jsonl":
		err = pdfimport.EncodeActivities(stdout, res.Activities)
	case "yaml":
		err = pdfimport.EncodeActivitiesYAML(stdout, res.Activities)
	case "md", "term":
		md := renderer.RenderActivitiesReport(renderer.NewActivitiesReport(filepath.Base(doc.Path), res.Activities, res.Status))
		if c.format == "term" {
			md, err = renderer.Terminal(md)
		}
		if err == nil {
			_, err = fmt.Fprint(stdout, md)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing activities: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
