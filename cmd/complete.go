package cmd

import (
	"flag"

	"github.com/etnz/pdfimport"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the application.
//
// Each subcommand completes its flags, and documents as arguments. Global
// flags are completed at the top level.
func Completion() *complete.Command {
	documents := predict.Or(predict.Files("*.pdf"), predict.Files("*.json"))
	values := map[string]complete.Predictor{
		"format": predict.Set(formats),
		"broker": predict.Set(pdfimport.Names()),
	}

	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine, values),
	}
	for _, c := range Commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(fs, values),
			Args:  documents,
		}
	}
	return root
}

// flagPredictors predicts the value of each flag in fs: from values when
// known, nothing for booleans and anything otherwise.
func flagPredictors(fs *flag.FlagSet, values map[string]complete.Predictor) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := values[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
