package render

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/loykin/restcli/internal/constants"
	"github.com/tidwall/gjson"
)

// JSONFormat writes the body indented by two spaces, keeping the server's
// key order and number text.
type JSONFormat struct{}

func (JSONFormat) Validate(body []byte) error {
	if !gjson.ValidBytes(body) {
		return ErrInvalidJSON
	}
	return nil
}

func (f JSONFormat) Write(w io.Writer, body []byte) error {
	out, err := Pretty(body)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Pretty returns body indented with two spaces plus a trailing newline.
func Pretty(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", constants.JSONIndent); err != nil {
		return nil, ErrInvalidJSON
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
