// multipart.go - Multipart request builder for handler tests
package testutil

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
)

// Field is a text part.
type Field struct {
	Name  string
	Value string
}

// File is a file part. Reader takes precedence over Data.
type File struct {
	Field       string
	Filename    string
	ContentType string
	// Encoding sets the part's Content-Transfer-Encoding header.
	Encoding string
	Data     []byte
	Reader   io.Reader
}

// MultipartRequest builds a POST request whose multipart body is streamed
// through a pipe, so large file parts are never held in memory.
func MultipartRequest(t testing.TB, target string, fields []Field, files []File) *http.Request {
	t.Helper()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeParts(mw, fields, files))
	}()
	t.Cleanup(func() { pr.Close() })

	req := httptest.NewRequest(http.MethodPost, target, pr)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func writeParts(mw *multipart.Writer, fields []Field, files []File) error {
	for _, f := range fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return err
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.Field), escapeQuotes(f.Filename)))
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		if f.Encoding != "" {
			h.Set("Content-Transfer-Encoding", f.Encoding)
		}
		w, err := mw.CreatePart(h)
		if err != nil {
			return err
		}

		src := f.Reader
		if src == nil {
			src = strings.NewReader(string(f.Data))
		}
		if _, err := io.Copy(w, src); err != nil {
			return err
		}
	}

	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// ZeroReader returns a reader of n zero bytes.
func ZeroReader(n int64) io.Reader {
	return io.LimitReader(zeros{}, n)
}

type zeros struct{}

func (zeros) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = 0
	}
	return len(b), nil
}
