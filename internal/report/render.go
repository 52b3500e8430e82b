// Package report renders classified scan reports for terminal, JSON, YAML,
// and chart consumers.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/pyimports/pkg/importmodel"
)

// Output format names.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for format names outside text, json, yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes classified reports in a configured format.
type Renderer struct {
	NoColor bool
}

// moduleView is the serializable shape of one classified module.
type moduleView struct {
	Name           string   `json:"name"                yaml:"name"`
	Classification string   `json:"classification"      yaml:"classification"`
	Occurrences    int      `json:"occurrences"         yaml:"occurrences"`
	Evidence       []string `json:"evidence,omitempty"  yaml:"evidence,omitempty"`
}

func viewOf(report importmodel.Report) []moduleView {
	views := make([]moduleView, 0, len(report))

	for _, m := range report {
		view := moduleView{
			Name:           m.Name,
			Classification: m.Class.String(),
			Occurrences:    m.Count,
		}

		for _, occ := range m.Evidence {
			view.Evidence = append(view.Evidence, occ.String())
		}

		views = append(views, view)
	}

	return views
}

// Render writes the report to w in the named format.
func (r *Renderer) Render(format string, report importmodel.Report, w io.Writer) error {
	switch format {
	case FormatText:
		return r.RenderText(report, w)
	case FormatJSON:
		return r.RenderJSON(report, w)
	case FormatYAML:
		return r.RenderYAML(report, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// RenderText writes a summary line and one table row per module. Optional
// modules carry their file:line:column evidence; required modules do not.
func (r *Renderer) RenderText(report importmodel.Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "Found %s imported modules\n", humanize.Comma(int64(len(report))))
	if err != nil {
		return fmt.Errorf("render text: %w", err)
	}

	if len(report) == 0 {
		return nil
	}

	required := color.New(color.FgGreen).SprintFunc()
	optional := color.New(color.FgYellow).SprintFunc()

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Module", "Classification", "Occurrences", "Evidence"})

	for _, m := range report {
		cls := m.Class.String()

		if !r.NoColor {
			if m.Class == importmodel.ClassRequired {
				cls = required(cls)
			} else {
				cls = optional(cls)
			}
		}

		tw.AppendRow(table.Row{m.Name, cls, m.Count, evidenceCell(m)})
	}

	tw.Render()

	return nil
}

func evidenceCell(m importmodel.ModuleReport) string {
	if len(m.Evidence) == 0 {
		return ""
	}

	triples := make([]string, 0, len(m.Evidence))
	for _, occ := range m.Evidence {
		triples = append(triples, occ.String())
	}

	return strings.Join(triples, "\n")
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report importmodel.Report, w io.Writer) error {
	data, err := json.MarshalIndent(viewOf(report), "", "  ")
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}

	_, err = w.Write(append(data, '\n'))
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}

	return nil
}

// RenderYAML writes the report as YAML.
func (r *Renderer) RenderYAML(report importmodel.Report, w io.Writer) error {
	data, err := yaml.Marshal(viewOf(report))
	if err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}

	return nil
}
