package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	errs "github.com/matzehuels/squarify/pkg/errors"
	"github.com/matzehuels/squarify/pkg/layout"
)

// Output formats.
const (
	// FormatCSV writes one row per rectangle.
	FormatCSV = "csv"
)

var csvHeader = []string{"id", "label", "value", "x", "y", "width", "height"}

// WriteCSV writes the rectangles of l as CSV, with a header row.
func WriteCSV(l layout.Layout, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, r := range l.Rects {
		row := []string{
			strconv.Itoa(r.ID),
			r.Label,
			formatFloat(r.Value),
			formatFloat(r.X),
			formatFloat(r.Y),
			formatFloat(r.Width),
			formatFloat(r.Height),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes l as indented JSON.
func WriteJSON(l layout.Layout, w io.Writer) error {
	data, err := layout.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Write encodes l in format (json or csv) to w.
func Write(l layout.Layout, format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		return WriteJSON(l, w)
	case FormatCSV:
		return WriteCSV(l, w)
	}
	return errs.ValidateFormat(format, FormatJSON, FormatCSV)
}

// ExportFile writes l to path, choosing JSON or CSV from the extension.
func ExportFile(l layout.Layout, path string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if err := errs.ValidateFormat(format, FormatJSON, FormatCSV); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(l, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
