// Command pdfi extracts buys, sells and dividends from broker PDF documents.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/etnz/pdfimport/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// .env values do not override the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning, cannot load .env file: %v", err)
	}

	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell for completion.
	cmd.Completion().Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
