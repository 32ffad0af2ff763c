package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/squarify/pkg/errors"
	"github.com/matzehuels/squarify/pkg/treemap"
)

// Input formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatText = "txt"
)

// Item is one labeled weight.
type Item struct {
	Label string  `json:"label,omitempty" toml:"label"`
	Value float64 `json:"value" toml:"value"`
}

// Input is a parsed weight file.
type Input struct {
	Items []Item
	// Canvas is set when the file specifies one.
	Canvas *treemap.Canvas
}

// Values returns the weights in file order.
func (in *Input) Values() []float64 {
	out := make([]float64, len(in.Items))
	for i, it := range in.Items {
		out[i] = it.Value
	}
	return out
}

// Labels returns the labels in file order, or nil if no item is labeled.
func (in *Input) Labels() []string {
	var labeled bool
	out := make([]string, len(in.Items))
	for i, it := range in.Items {
		out[i] = it.Label
		labeled = labeled || it.Label != ""
	}
	if !labeled {
		return nil
	}
	return out
}

type canvas struct {
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

type document struct {
	Weights []float64 `json:"weights" toml:"weights"`
	Labels  []string  `json:"labels" toml:"labels"`
	Items   []Item    `json:"items" toml:"items"`
	Canvas  *canvas   `json:"canvas" toml:"canvas"`
}

// FormatFromPath returns the input format implied by a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// ReadInput parses weights in the given format from r.
// Parse failures are INVALID_INPUT errors; an unknown format is INVALID_FORMAT.
// ReadInput does not close r.
func ReadInput(r io.Reader, format string) (*Input, error) {
	if err := errs.ValidateFormat(format, FormatJSON, FormatTOML, FormatText); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	switch format {
	case FormatJSON:
		return readJSON(data)
	case FormatTOML:
		return readTOML(data)
	default:
		return readText(data)
	}
}

// ImportFile reads the weight file at path, choosing the format from its
// extension. A missing file is a FILE_NOT_FOUND error.
func ImportFile(path string) (*Input, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "weights file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	in, err := ReadInput(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

func readJSON(data []byte) (*Input, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var values []float64
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode json weights")
		}
		return fromDocument(document{Weights: values})
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode json weights")
	}
	return fromDocument(doc)
}

func readTOML(data []byte) (*Input, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode toml weights")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown toml keys: %s", strings.Join(keys, ", "))
	}
	return fromDocument(doc)
}

func readText(data []byte) (*Input, error) {
	in := &Input{Items: []Item{}}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var label string
		field := line
		if i := strings.LastIndexAny(line, "\t,"); i >= 0 {
			label = strings.TrimSpace(line[:i])
			field = strings.TrimSpace(line[i+1:])
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errs.New(errs.ErrCodeInvalidInput, "line %d: %q is not a number", n, field)
		}
		if err := errs.ValidateLabel(label); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		in.Items = append(in.Items, Item{Label: label, Value: v})
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "scan text weights")
	}
	return in, nil
}

func fromDocument(doc document) (*Input, error) {
	if len(doc.Weights) > 0 && len(doc.Items) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "weights and items are mutually exclusive")
	}
	if len(doc.Labels) > 0 && len(doc.Labels) != len(doc.Weights) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "got %d labels for %d weights", len(doc.Labels), len(doc.Weights))
	}

	in := &Input{Items: doc.Items}
	if len(doc.Weights) > 0 {
		in.Items = make([]Item, len(doc.Weights))
		for i, v := range doc.Weights {
			in.Items[i].Value = v
			if len(doc.Labels) > 0 {
				in.Items[i].Label = doc.Labels[i]
			}
		}
	}
	if in.Items == nil {
		in.Items = []Item{}
	}
	for i, it := range in.Items {
		if err := errs.ValidateLabel(it.Label); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	if doc.Canvas != nil {
		c := treemap.Canvas{X: doc.Canvas.X, Y: doc.Canvas.Y, Width: doc.Canvas.Width, Height: doc.Canvas.Height}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		in.Canvas = &c
	}
	return in, nil
}
