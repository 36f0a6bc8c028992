package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const statementDump = `[
["Quir","in Pr","ivatbank A","G","Kontoauszug","Buchungstag","Valuta","Vorgang","Betrag",
 "-984,92","EUR","19.07.2021","15.07.2021","Wertpapier Kauf",", Ref",".: 227865486",
 "Am","undi Inde","x Solu.-A.PRIME GL.","Nam.-Ant.UCI.ETF DR USD Dis",".oN","LU1931974692, ST 37,722"],
["2,43","EUR","21.07.2021","20.07.2021","Erträgnisabrechn",", Ref",".: 227877777",
 "iShares Core MSCI World"," UCITS ETF","IE00B4L5Y983, ST 10,714","KEST",": EUR -0,43, SOLI:","EUR -0,02"]
]`

const emptyStatementDump = `{"pages":[["Quir","in Pr","ivatbank A","G","Kontoauszug","Neuer Saldo","0,00","EUR"]]}`

// Helper function to create a temporary document
func createTempDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp document: %v", err)
	}
	return path
}

// run executes cmd with args and returns its status and output.
func run(t *testing.T, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags %v: %v", args, err)
	}

	var out bytes.Buffer
	oldStdout := stdout
	stdout = &out
	defer func() { stdout = oldStdout }()

	status := cmd.Execute(context.Background(), f)
	return status, out.String()
}

func TestExtractJSONL(t *testing.T) {
	doc := createTempDocument(t, "statement.json", statementDump)

	status, got := run(t, &extractCmd{}, doc)

	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	want := `{"broker":"quirion","type":"Buy","date":"2021-07-15","datetime":"2021-07-15T00:00:00Z","isin":"LU1931974692","company":"Amundi Index Solu.-A.PRIME GL.Nam.-Ant.UCI.ETF DR USD Dis.oN","shares":37.722,"price":26.1099,"amount":984.92,"fee":0,"tax":0}
{"broker":"quirion","type":"Dividend","date":"2021-07-20","datetime":"2021-07-20T00:00:00Z","isin":"IE00B4L5Y983","company":"iShares Core MSCI World UCITS ETF","shares":10.714,"price":0.2688,"amount":2.88,"fee":0,"tax":0.45}
`
	if got != want {
		t.Errorf("extract output mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestExtractFormats(t *testing.T) {
	doc := createTempDocument(t, "statement.json", statementDump)

	testCases := []struct {
		format string
		want   []string
	}{
		{format: "yaml", want: []string{"- broker: quirion", "type: Buy", "isin: LU1931974692", "type: Dividend"}},
		{format: "md", want: []string{"# statement.json", "2 activities found.", "| LU1931974692 |", "€984.92"}},
	}
	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			status, got := run(t, &extractCmd{}, "-format", tc.format, doc)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Expected ExitSuccess, got %v", status)
			}
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("extract -format %s output does not contain %q:\n%s", tc.format, want, got)
				}
			}
		})
	}
}

func TestExtractNoActivities(t *testing.T) {
	doc := createTempDocument(t, "empty.json", emptyStatementDump)

	status, got := run(t, &extractCmd{}, "-jsonpath", "$.pages", doc)

	if status != subcommands.ExitSuccess {
		t.Errorf("Expected ExitSuccess, got %v", status)
	}
	if got != "" {
		t.Errorf("Expected no output, got:\n%s", got)
	}
}

func TestExtractErrors(t *testing.T) {
	statement := createTempDocument(t, "statement.json", statementDump)
	usd := createTempDocument(t, "usd.json", strings.Replace(statementDump, `"-984,92","EUR"`, `"-984,92","USD"`, 1))
	other := createTempDocument(t, "other.json", `[["Sparkasse","Kontoauszug"]]`)

	testCases := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{name: "no document", args: nil, want: subcommands.ExitUsageError},
		{name: "unknown format", args: []string{"-format", "csv", statement}, want: subcommands.ExitUsageError},
		{name: "unsupported file", args: []string{filepath.Join(t.TempDir(), "statement.csv")}, want: subcommands.ExitUsageError},
		{name: "foreign currency statement", args: []string{usd}, want: subcommands.ExitFailure},
		{name: "other bank", args: []string{other}, want: subcommands.ExitFailure},
		{name: "unknown broker", args: []string{"-broker", "smartbroker", statement}, want: subcommands.ExitFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, got := run(t, &extractCmd{}, tc.args...)
			if status != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, status)
			}
			if got != "" {
				t.Errorf("Expected no output on error, got:\n%s", got)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	statement := createTempDocument(t, "statement.json", statementDump)
	status, got := run(t, &checkCmd{}, statement)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if want := statement + "\tquirion\n"; got != want {
		t.Errorf("check output = %q, want %q", got, want)
	}

	other := createTempDocument(t, "other.json", `[["Sparkasse","Kontoauszug"]]`)
	if status, _ := run(t, &checkCmd{}, other); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure for another bank, got %v", status)
	}
}

func TestFragments(t *testing.T) {
	doc := createTempDocument(t, "statement.json", statementDump)

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "grep", args: []string{"-grep", "ST ", doc}, want: "21\tLU1931974692, ST 37,722\n31\tIE00B4L5Y983, ST 10,714\n"},
		{name: "grep across pages", args: []string{"-grep", "KEST", doc}, want: "32\tKEST\n"},
		{name: "dump", args: []string{"-json", "-grep", "ignored", createTempDocument(t, "small.json", `["Quir","in Pr"]`)}, want: "[[\"Quir\",\"in Pr\"]]\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, got := run(t, &fragmentsCmd{}, tc.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Expected ExitSuccess, got %v", status)
			}
			if got != tc.want {
				t.Errorf("fragments output = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"check", "extract", "fragments"} {
		sub, ok := c.Sub[name]
		if !ok {
			t.Errorf("Completion() has no %q subcommand", name)
			continue
		}
		if _, ok := sub.Flags["jsonpath"]; !ok {
			t.Errorf("Completion() of %q does not complete -jsonpath", name)
		}
	}
	if _, ok := c.Sub["extract"].Flags["format"]; !ok {
		t.Error("Completion() of extract does not complete -format")
	}
	if _, ok := c.Flags["verbose"]; !ok {
		t.Error("Completion() does not complete the global -verbose flag")
	}
}
