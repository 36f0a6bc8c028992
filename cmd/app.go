// Package cmd implements the CLI application to import broker documents.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/pdftext"
	_ "github.com/etnz/pdfimport/quirion" // registers the quirion parser
	"github.com/google/subcommands"
)

const (
	EnvVerbose  = "PDFIMPORT_VERBOSE"
	EnvJSONPath = "PDFIMPORT_JSONPATH"
	EnvBroker   = "PDFIMPORT_BROKER"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		c.Register(cmd, "documents")
	}
}

// Commands returns a new instance of each subcommand.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&checkCmd{},
		&extractCmd{},
		&fragmentsCmd{},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var Verbose = flag.Bool("verbose", envBool(EnvVerbose), "log details about the document being imported. Defaults to $"+EnvVerbose)

// stdout receives the command results, tests replace it.
var stdout io.Writer = os.Stdout

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

func envString(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return fallback
}

// openDocument reads the single document named on the command line.
func openDocument(f *flag.FlagSet, jsonPath string) (*pdftext.Document, error) {
	if f.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one document, got %d arguments", f.NArg())
	}
	pdftext.Verbose = *Verbose
	doc, err := pdftext.Open(f.Arg(0), jsonPath)
	if err != nil {
		return nil, err
	}
	if *Verbose {
		log.Printf("%s: %d pages, %d fragments", doc.Path, len(doc.Pages), doc.Pages.Len())
	}
	return doc, nil
}

// parserFor returns the parser named broker, or the one accepting doc if broker is empty.
func parserFor(doc *pdftext.Document, broker string) (pdfimport.Parser, error) {
	if broker != "" {
		return pdfimport.Lookup(broker)
	}
	p, err := pdfimport.Detect(doc.Pages, doc.Extension)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}
	if *Verbose {
		log.Printf("%s: detected %s document", doc.Path, p.Name())
	}
	return p, nil
}
