package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"runtime"

	"github.com/loykin/restcli/internal/common"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// CSVFormat writes a JSON array of objects as a header row plus one row per
// element. The header is the first element's keys in document order. Later
// elements are laid out against that header as-is: missing keys become empty
// cells and keys outside the header are dropped with a warning.
type CSVFormat struct {
	UseCRLF bool
	Logger  *common.Logger
}

// NewCSVFormat uses the platform line terminator.
func NewCSVFormat() *CSVFormat {
	return &CSVFormat{UseCRLF: runtime.GOOS == "windows"}
}

func (f *CSVFormat) Validate(body []byte) error {
	_, err := records(body)
	return err
}

func (f *CSVFormat) Write(w io.Writer, body []byte) error {
	rows, err := records(body)
	if err != nil {
		return err
	}
	logger := f.Logger
	if logger == nil {
		logger = common.GetLogger()
	}
	logger = logger.WithComponent("csv")

	header := keys(rows[0])
	cw := csv.NewWriter(w)
	cw.UseCRLF = f.UseCRLF
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, rec := range rows {
		if !rec.IsObject() {
			return fmt.Errorf("%w: element %d is not an object", ErrCSVShape, i)
		}
		row, dropped := line(rec, header)
		if len(dropped) > 0 {
			logger.Warn("record keys not in header dropped", "row", i, "keys", dropped)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// records checks the body is a non-empty array led by an object.
func records(body []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array of objects", ErrCSVShape)
	}
	rows := parsed.Array()
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty array has no header", ErrCSVShape)
	}
	if !rows[0].IsObject() {
		return nil, fmt.Errorf("%w: first element is not an object", ErrCSVShape)
	}
	return rows, nil
}

// keys returns obj's keys in document order; a repeated key keeps its first position.
func keys(obj gjson.Result) []string {
	var out []string
	seen := map[string]struct{}{}
	obj.ForEach(func(k, _ gjson.Result) bool {
		if _, ok := seen[k.Str]; !ok {
			seen[k.Str] = struct{}{}
			out = append(out, k.Str)
		}
		return true
	})
	return out
}

// line lays rec out in header order and reports keys the header lacks.
func line(rec gjson.Result, header []string) ([]string, []string) {
	values := map[string]gjson.Result{}
	var order []string
	rec.ForEach(func(k, v gjson.Result) bool {
		if _, ok := values[k.Str]; !ok {
			order = append(order, k.Str)
		}
		values[k.Str] = v
		return true
	})

	row := make([]string, len(header))
	inHeader := make(map[string]struct{}, len(header))
	for i, h := range header {
		inHeader[h] = struct{}{}
		if v, ok := values[h]; ok {
			row[i] = cell(v)
		}
	}
	var dropped []string
	for _, k := range order {
		if _, ok := inHeader[k]; !ok {
			dropped = append(dropped, k)
		}
	}
	return row, dropped
}

// cell is the text written for one value: strings unquoted, null empty,
// numbers and booleans as written by the server, nested values as compact JSON.
func cell(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	case gjson.JSON:
		return string(pretty.Ugly([]byte(v.Raw)))
	default:
		return v.Raw
	}
}
