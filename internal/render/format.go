package render

import (
	"errors"
	"io"
	"strings"

	"github.com/loykin/restcli/internal/constants"
	"github.com/loykin/restcli/internal/util"
)

var (
	// ErrInvalidJSON is returned when a success response body is not JSON.
	ErrInvalidJSON = errors.New("response body is not valid JSON")
	// ErrCSVShape is returned when a body cannot be laid out as CSV rows.
	ErrCSVShape = errors.New("response body cannot be written as CSV")
)

// Format serializes a JSON body into one file type.
// Validate runs before the output file is created so a rejected body
// never leaves a file behind.
type Format interface {
	Validate(body []byte) error
	Write(w io.Writer, body []byte) error
}

// Registry maps lowercased file extensions (".json") to formats.
type Registry struct {
	formats map[string]Format
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: map[string]Format{}}
}

// DefaultRegistry knows .json and .csv.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(constants.ExtJSON, JSONFormat{})
	r.Register(constants.ExtCSV, NewCSVFormat())
	return r
}

// Register adds or replaces the format for ext. The leading dot is optional.
func (r *Registry) Register(ext string, f Format) {
	ext = normalizeExt(ext)
	if _, exists := r.formats[ext]; !exists {
		r.order = append(r.order, ext)
	}
	r.formats[ext] = f
}

// Lookup finds the format for ext.
func (r *Registry) Lookup(ext string) (Format, bool) {
	f, ok := r.formats[normalizeExt(ext)]
	return f, ok
}

// ForPath finds the format for path's extension and returns the extension.
func (r *Registry) ForPath(path string) (Format, string, bool) {
	ext := util.LowerExt(path)
	if ext == "" {
		return nil, "", false
	}
	f, ok := r.formats[ext]
	return f, ext, ok
}

// Extensions lists registered extensions in registration order.
func (r *Registry) Extensions() []string {
	return append([]string(nil), r.order...)
}

func normalizeExt(ext string) string {
	ext = util.TrimAndLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// joinOr renders ".json or .csv", ".a, .b or .c".
func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}
