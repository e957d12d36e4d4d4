package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/loykin/restcli/internal/common"
	"github.com/loykin/restcli/internal/request"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with HTTP status %d", e.Code)
}

// IsSuccess reports whether code is in the 2xx class.
func IsSuccess(code int) bool {
	return code/100 == 2
}

// Renderer prints the outcome of a request and serializes successful bodies.
type Renderer struct {
	out     io.Writer
	formats *Registry
	logger  *common.Logger
}

// NewRenderer writes console output to out using the default formats.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, formats: DefaultRegistry()}
}

// WithFormats swaps the format registry.
func (r *Renderer) WithFormats(formats *Registry) *Renderer {
	return &Renderer{out: r.out, formats: formats, logger: r.logger}
}

// WithLogger returns a copy of r that logs through logger.
func (r *Renderer) WithLogger(logger *common.Logger) *Renderer {
	return &Renderer{out: r.out, formats: r.formats, logger: logger}
}

func (r *Renderer) log() *common.Logger {
	if r.logger != nil {
		return r.logger
	}
	return common.GetLogger()
}

// Render always prints the status line first. A non-2xx response prints the
// raw body and returns *StatusError without touching target. With an empty
// target the body is pretty-printed to the console. An unknown target
// extension prints a diagnostic and returns nil.
func (r *Renderer) Render(resp *request.Response, target string) error {
	target = strings.TrimSpace(target)
	if _, err := fmt.Fprintf(r.out, "HTTP Status Code: %d\n", resp.StatusCode); err != nil {
		return err
	}

	if !IsSuccess(resp.StatusCode) {
		if _, err := fmt.Fprintf(r.out, "Error: %s\n", resp.Body); err != nil {
			return err
		}
		return &StatusError{Code: resp.StatusCode, Body: resp.Body}
	}

	if target == "" {
		out, err := Pretty(resp.Body)
		if err != nil {
			return err
		}
		_, err = r.out.Write(out)
		return err
	}

	logger := r.log().WithComponent("renderer").WithOutput(target)
	f, ext, ok := r.formats.ForPath(target)
	if !ok {
		name := ext
		if name == "" {
			name = filepath.Base(target)
		}
		logger.Info("unsupported output format, nothing written", "extension", name)
		_, err := fmt.Fprintf(r.out, "Unsupported output format %q. Please use %s.\n", name, joinOr(r.formats.Extensions()))
		return err
	}

	if err := writeFile(target, f, resp.Body); err != nil {
		logger.Error("failed to write output", "error", err)
		return err
	}
	logger.Info("output written", "bytes", len(resp.Body))
	_, err := fmt.Fprintf(r.out, "Data written to %s\n", target)
	return err
}

// writeFile validates body first so rejected bodies never create the file.
// The handle is closed on every path; a failed write may leave partial content.
func writeFile(path string, f Format, body []byte) (err error) {
	if err := f.Validate(body); err != nil {
		return err
	}
	// #nosec G304 -- output path is chosen by the user on the command line
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return f.Write(file, body)
}
