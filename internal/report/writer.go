package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Style selects the output encoding.
type Style string

const (
	StyleText  Style = "text"
	StyleJSON  Style = "json"
	StyleYAML  Style = "yaml"
	StyleTable Style = "table"
)

// ParseStyle validates a --format value.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleText, StyleJSON, StyleYAML, StyleTable:
		return st, nil
	case "":
		return StyleText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, yaml or table)", s)
	}
}

// Structured reports whether the style emits every header field.
func (s Style) Structured() bool {
	return s != StyleText
}

// Writer renders records in a single style.
type Writer struct {
	w      io.Writer
	style  Style
	indent bool
}

func NewWriter(w io.Writer, style Style, indent bool) *Writer {
	return &Writer{w: w, style: style, indent: indent}
}

// Write renders records in order. Compact JSON and YAML produce one document
// per record so output can be consumed as a stream; indented JSON is a single
// array.
func (w *Writer) Write(records []Record) error {
	switch w.style {
	case StyleText:
		return w.writeText(records)
	case StyleJSON:
		return w.writeJSON(records)
	case StyleYAML:
		return w.writeYAML(records)
	case StyleTable:
		return w.writeTable(records)
	default:
		return fmt.Errorf("unsupported output format %q", w.style)
	}
}

func (w *Writer) writeText(records []Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w.w, r.Compact()); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeJSON(records []Record) error {
	if w.indent {
		if records == nil {
			records = []Record{}
		}
		b, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
		_, err = w.w.Write(append(b, '\n'))
		return err
	}
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode %s: %w", r.Filename, err)
		}
		if _, err := w.w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeYAML(records []Record) error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode %s: %w", r.Filename, err)
		}
	}
	return enc.Close()
}

func (w *Writer) writeTable(records []Record) error {
	extended := false
	for _, r := range records {
		if r.HasFields() {
			extended = true
			break
		}
	}

	header := []string{"FILE", "FORMAT", "VERSION"}
	if extended {
		header = append(header, "N_VOCAB", "N_EMBD", "N_MULT", "N_HEAD", "N_LAYER", "N_ROT", "FTYPE")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		version := "-"
		if r.Version != nil {
			version = strconv.FormatInt(int64(*r.Version), 10)
		}
		row := []string{r.Filename, r.Format, version}
		if extended {
			for _, kv := range r.fieldPairs() {
				v := kv[1]
				if v == "" {
					v = "-"
				}
				row = append(row, v)
			}
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(w.w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
	return nil
}
