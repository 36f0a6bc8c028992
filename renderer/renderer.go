// Package renderer renders activities as markdown reports, and markdown for
// the terminal.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/pdfimport"
)

//go:embed *.md
var templates embed.FS

// funcs are available to all templates.
var funcs = template.FuncMap{
	// cell escapes the pipes of a table cell.
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
}

// ActivitiesReport is the data of the activities template.
type ActivitiesReport struct {
	Title      string
	Status     pdfimport.Status
	StatusCode int
	Rows       []ActivityRow
}

// ActivityRow is an activity formatted for display.
type ActivityRow struct {
	Date    string
	Type    string
	ISIN    string
	Company string
	Shares  string
	Price   string
	Tax     string
	Amount  string
	FX      string // foreign currency and rate, empty in home currency.
}

// NewActivitiesReport formats activities for the activities template.
func NewActivitiesReport(title string, activities []pdfimport.Activity, status pdfimport.Status) *ActivitiesReport {
	r := &ActivitiesReport{Title: title, Status: status, StatusCode: int(status)}
	for _, a := range activities {
		row := ActivityRow{
			Date:    a.Date.String(),
			Type:    string(a.Type),
			ISIN:    a.ISIN,
			Company: a.Company,
			Shares:  a.Shares.String(),
			Price:   a.Price.String(),
			Tax:     pdfimport.FormatAmount(a.Tax, pdfimport.HomeCurrency),
			Amount:  pdfimport.FormatAmount(a.Amount, pdfimport.HomeCurrency),
		}
		if a.ForeignCurrency != "" {
			row.FX = fmt.Sprintf("%s %s", a.ForeignCurrency, a.FxRate)
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

// RenderActivities renders activities and their status to a markdown string.
func RenderActivities(activities []pdfimport.Activity, status pdfimport.Status) string {
	return RenderActivitiesReport(NewActivitiesReport("Activities", activities, status))
}

// RenderActivitiesReport renders a prepared report to a markdown string.
func RenderActivitiesReport(r *ActivitiesReport) string {
	partials := map[string]string{
		"activities_title": "activities_title.md",
		"activities_table": "activities_table.md",
	}
	return renderTemplate("activities", "activities.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
