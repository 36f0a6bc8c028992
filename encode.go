package pdfimport

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// this file contains the output formats for activities.

// EncodeActivities writes activities to w in JSONL format: one JSON object per
// line, in document order.
func EncodeActivities(w io.Writer, activities []Activity) error {
	for _, a := range activities {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("cannot marshal activity %s: %w", a, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write activity: %w", err)
		}
	}
	return nil
}

// EncodeActivitiesYAML writes activities to w as a YAML sequence.
func EncodeActivitiesYAML(w io.Writer, activities []Activity) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if activities == nil {
		activities = []Activity{}
	}
	if err := enc.Encode(activities); err != nil {
		return fmt.Errorf("cannot encode activities to yaml: %w", err)
	}
	return enc.Close()
}
