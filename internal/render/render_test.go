package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/loykin/restcli/internal/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userJSON = `{"id":1,"name":"Leanne Graham","address":{"street":"Kulas Light","geo":{"lat":"-37.3159"}},"active":true}`

func resp(code int, body string) *request.Response {
	return &request.Response{StatusCode: code, Body: []byte(body)}
}

func TestIsSuccess(t *testing.T) {
	for _, code := range []int{200, 201, 204, 299} {
		assert.True(t, IsSuccess(code), "%d should succeed", code)
	}
	for _, code := range []int{0, 100, 199, 300, 302, 404, 500, 599} {
		assert.False(t, IsSuccess(code), "%d should fail", code)
	}
}

func TestRender_StdoutPrettyPrint(t *testing.T) {
	var out bytes.Buffer
	err := NewRenderer(&out).Render(resp(200, userJSON), "")
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, json.Indent(&want, []byte(userJSON), "", "  "))
	assert.Equal(t, "HTTP Status Code: 200\n"+want.String()+"\n", out.String())
}

func TestRender_KeepsKeyOrderAndNumbers(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out).Render(resp(201, `{"zeta":1.50,"alpha":[],"mid":{}}`), ""))
	assert.Equal(t, "HTTP Status Code: 201\n{\n  \"zeta\": 1.50,\n  \"alpha\": [],\n  \"mid\": {}\n}\n", out.String())
}

func TestRender_FailureStatuses(t *testing.T) {
	for _, code := range []int{199, 300, 404, 500} {
		t.Run(strconv.Itoa(code), func(t *testing.T) {
			dir := t.TempDir()
			target := filepath.Join(dir, "out.json")
			var out bytes.Buffer

			err := NewRenderer(&out).Render(resp(code, `{"message":"nope"}`), target)
			require.Error(t, err)
			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, code, se.Code)
			assert.Equal(t, `{"message":"nope"}`, string(se.Body))

			assert.Equal(t, "HTTP Status Code: "+strconv.Itoa(code)+"\nError: {\"message\":\"nope\"}\n", out.String())
			assert.NoFileExists(t, target)
		})
	}
}

func TestRender_FailureWithNonJSONBody(t *testing.T) {
	var out bytes.Buffer
	err := NewRenderer(&out).Render(resp(502, "<html>Bad Gateway</html>"), "")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, out.String(), "Error: <html>Bad Gateway</html>\n")
}

func TestRender_JSONFileRoundTrip(t *testing.T) {
	target := filepath.Join(t.TempDir(), "user.json")
	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out).Render(resp(200, userJSON), target))
	assert.Equal(t, "HTTP Status Code: 200\nData written to "+target+"\n", out.String())

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(written), "\n  \"id\": 1,")

	var got, want any
	require.NoError(t, json.Unmarshal(written, &got))
	require.NoError(t, json.Unmarshal([]byte(userJSON), &want))
	assert.Equal(t, want, got)
}

func TestRender_UppercaseExtension(t *testing.T) {
	target := filepath.Join(t.TempDir(), "USER.JSON")
	require.NoError(t, NewRenderer(&bytes.Buffer{}).Render(resp(200, userJSON), target))
	assert.FileExists(t, target)
}

func TestRender_TrimsTargetPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "users.csv")
	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out).Render(resp(200, `[{"id":1}]`), "  "+target+" "))
	assert.FileExists(t, target)
	assert.Equal(t, "HTTP Status Code: 200\nData written to "+target+"\n", out.String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.csv", entries[0].Name())
}

func TestRender_BlankTargetPrintsToStdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out).Render(resp(200, `{"id":1}`), "   "))
	assert.Equal(t, "HTTP Status Code: 200\n{\n  \"id\": 1\n}\n", out.String())
}

func TestRender_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"users.xml", "users"} {
		t.Run(name, func(t *testing.T) {
			target := filepath.Join(dir, name)
			var out bytes.Buffer
			// body is not even JSON: the format check comes first
			err := NewRenderer(&out).Render(resp(200, "plain text"), target)
			require.NoError(t, err)
			assert.Contains(t, out.String(), "HTTP Status Code: 200\nUnsupported output format")
			assert.Contains(t, out.String(), "Please use .json or .csv.")
			assert.NoFileExists(t, target)
		})
	}

	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out).Render(resp(200, "[]"), filepath.Join(dir, "a.XML")))
	assert.Contains(t, out.String(), `Unsupported output format ".xml".`)
}

func TestRender_InvalidJSONBody(t *testing.T) {
	var out bytes.Buffer
	err := NewRenderer(&out).Render(resp(200, "not json"), "")
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.Equal(t, "HTTP Status Code: 200\n", out.String())

	target := filepath.Join(t.TempDir(), "x.json")
	err = NewRenderer(&bytes.Buffer{}).Render(resp(200, "not json"), target)
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.NoFileExists(t, target)
}

func TestRender_CSVEmptyListCreatesNoFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "users.csv")
	var out bytes.Buffer
	err := NewRenderer(&out).Render(resp(200, "[]"), target)
	assert.ErrorIs(t, err, ErrCSVShape)
	assert.NoFileExists(t, target)
	assert.NotContains(t, out.String(), "Data written")
}

func TestRender_UnwritablePath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing", "dir", "out.json")
	err := NewRenderer(&bytes.Buffer{}).Render(resp(200, "{}"), target)
	require.Error(t, err)
	var pe *os.PathError
	assert.True(t, errors.As(err, &pe))
}

type textFormat struct{}

func (textFormat) Validate([]byte) error { return nil }

func (textFormat) Write(w io.Writer, body []byte) error {
	_, err := w.Write(bytes.ToUpper(body))
	return err
}

func TestRender_CustomFormat(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register("txt", textFormat{})
	target := filepath.Join(t.TempDir(), "out.txt")

	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out).WithFormats(reg).Render(resp(200, `{"a":"b"}`), target))
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"A":"B"}`, string(b))

	require.NoError(t, NewRenderer(&out).WithFormats(reg).Render(resp(200, `{}`), "x.yaml"))
	assert.Contains(t, out.String(), "Please use .json, .csv or .txt.")
}
