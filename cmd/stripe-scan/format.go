package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/fdw"
)

// Formatter renders scan results.
type Formatter interface {
	// WriteRows renders the rows of one scan.
	WriteRows(object string, columns []fdw.Column, rows []fdw.Row) error
	// WriteObject renders one entry of the supported-object listing.
	WriteObject(object string, columns []fdw.Column) error
	// WriteError renders a failed command. Text output leaves errors to
	// stderr.
	WriteError(err error) error
	// Flush writes anything buffered.
	Flush() error
}

// FormatterFactory builds a formatter writing to out.
type FormatterFactory func(out io.Writer) Formatter

// Formatters holds available formatters.
var Formatters = map[string]FormatterFactory{
	"text": NewTextFormatter,
	"json": NewJSONFormatter,
}

func formatNames() []string {
	return slices.Sorted(maps.Keys(Formatters))
}

// TextFormatter prints an aligned table.
type TextFormatter struct {
	io.Writer
}

func NewTextFormatter(out io.Writer) Formatter {
	return TextFormatter{Writer: out}
}

func (f TextFormatter) WriteRows(object string, columns []fdw.Column, rows []fdw.Row) error {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(f.Writer, "%s %s\n", yellow(object+":"), pluralize(len(rows), "row"))
	if len(rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	fmt.Fprintln(tw, strings.Join(names, "\t"))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			c, _ := row.Get(col.Name)
			cells[i] = c.String()
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func (f TextFormatter) WriteObject(object string, columns []fdw.Column) error {
	yellow := color.New(color.FgYellow).SprintFunc()
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col.Name + " " + col.Kind.String()
	}
	_, err := fmt.Fprintf(f.Writer, "%s %s\n", yellow(object+":"), strings.Join(parts, ", "))
	return err
}

func (f TextFormatter) WriteError(error) error { return nil }

func (f TextFormatter) Flush() error { return nil }

// JSONFormatter prints the result as a JSON array.
type JSONFormatter struct {
	entries []any
	encoder *json.Encoder
}

func NewJSONFormatter(out io.Writer) Formatter {
	return &JSONFormatter{
		entries: make([]any, 0),
		encoder: json.NewEncoder(out),
	}
}

type jsonColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonObject struct {
	Object  string       `json:"object"`
	Columns []jsonColumn `json:"columns"`
}

func (f *JSONFormatter) WriteRows(_ string, _ []fdw.Column, rows []fdw.Row) error {
	for _, row := range rows {
		f.entries = append(f.entries, row)
	}
	return nil
}

func (f *JSONFormatter) WriteObject(object string, columns []fdw.Column) error {
	entry := jsonObject{Object: object, Columns: make([]jsonColumn, len(columns))}
	for i, col := range columns {
		entry.Columns[i] = jsonColumn{Name: col.Name, Type: col.Kind.String()}
	}
	f.entries = append(f.entries, entry)
	return nil
}

// WriteError prints the error envelope in place of the result array.
func (f *JSONFormatter) WriteError(err error) error {
	return f.encoder.Encode(errors.Wrap(err).ToResponse())
}

func (f *JSONFormatter) Flush() error {
	return f.encoder.Encode(f.entries)
}

func pluralize(count int, singular string) string {
	if count != 1 {
		singular += "s"
	}
	return fmt.Sprintf("%d %s", count, singular)
}
