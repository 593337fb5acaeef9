package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

// MultipartBody is a multipart/form-data request body carrying one file and
// optional plain form fields. Pass it as the Body of a Request; the client
// derives the Content-Type header, boundary included, from it.
//
// The single-file shape matches the upload endpoints this package is used
// against; an endpoint taking several files would need a different body type.
type MultipartBody struct {
	// FieldName is the form field the file is sent under, e.g. "file".
	FieldName string
	// FileName is the file name reported to the server.
	FileName string
	// ContentType is the MIME type of the file part. Empty means
	// application/octet-stream.
	ContentType string
	// Content supplies the file bytes.
	Content io.Reader
	// Fields are additional plain form fields, written before the file part
	// in lexical key order.
	Fields map[string]string
}

// encode writes the full multipart message and returns it together with the
// Content-Type header value carrying the boundary.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	if m.FieldName == "" || m.Content == nil {
		return nil, "", fmt.Errorf("multipart body needs a field name and content")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range sortedKeys(m.Fields) {
		if err := w.WriteField(key, m.Fields[key]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreatePart(m.fileHeader())
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, m.Content); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (m *MultipartBody) fileHeader() textproto.MIMEHeader {
	contentType := m.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader, 2)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		headerEscaper.Replace(m.FieldName), headerEscaper.Replace(m.FileName)))
	h.Set("Content-Type", contentType)
	return h
}

// headerEscaper protects quote and backslash characters in Content-Disposition
// parameter values.
var headerEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
