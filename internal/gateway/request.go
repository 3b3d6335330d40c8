package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

const contentTypeJSON = "application/json"

// Request — описание одного логического вызова бэкенда.
//
// Body:
//   - nil — без тела;
//   - *Form — multipart; Content-Type (с boundary) берётся из формы, JSON не навязывается;
//   - []byte, string, json.RawMessage, io.Reader — отправляются как есть;
//   - любое другое значение — кодируется в JSON.
//
// Для всех тел, кроме *Form, выставляется Content-Type: application/json,
// если вызывающий не задал свой. Тело буферизуется один раз: повтор после
// refresh отправляет те же байты.
type Request struct {
	Method string
	Header http.Header
	Body   any
}

// encode возвращает тело и Content-Type по умолчанию для него.
func (r Request) encode() ([]byte, string, error) {
	switch b := r.Body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		data, err := b.bytes()
		if err != nil {
			return nil, "", err
		}
		return data, b.ContentType(), nil
	case []byte:
		return b, contentTypeJSON, nil
	case json.RawMessage:
		return b, contentTypeJSON, nil
	case string:
		return []byte(b), contentTypeJSON, nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, "", fmt.Errorf("read request body: %w", err)
		}
		return data, contentTypeJSON, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("marshal request body: %w", err)
		}
		return data, contentTypeJSON, nil
	}
}

// Form — multipart/form-data тело (аналог FormData).
type Form struct {
	buf    bytes.Buffer
	w      *multipart.Writer
	closed bool
}

func NewForm() *Form {
	f := &Form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// ContentType — multipart/form-data с boundary этой формы.
func (f *Form) ContentType() string { return f.w.FormDataContentType() }

func (f *Form) Field(name, value string) error {
	return f.w.WriteField(name, value)
}

// JSON добавляет часть с JSON-значением и собственным Content-Type.
func (f *Form) JSON(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal form part %q: %w", name, err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentTypeJSON)

	pw, err := f.w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = pw.Write(data)
	return err
}

// File добавляет файловую часть. contentType == "" — application/octet-stream.
func (f *Form) File(name, filename, contentType string, data []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	pw, err := f.w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = pw.Write(data)
	return err
}

// bytes закрывает форму (один раз) и возвращает закодированное тело.
func (f *Form) bytes() ([]byte, error) {
	if !f.closed {
		if err := f.w.Close(); err != nil {
			return nil, fmt.Errorf("close multipart form: %w", err)
		}
		f.closed = true
	}

	return f.buf.Bytes(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
