package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Body is the request payload: either JSON or Multipart. A nil Body sends
// no payload.
type Body interface {
	isBody()
}

// JSON is a structured payload encoded with encoding/json.
type JSON struct {
	Value any
}

// Multipart is an ordered multipart/form-data payload.
type Multipart struct {
	Parts []Part
}

func (JSON) isBody()      {}
func (Multipart) isBody() {}

// Part is one named multipart part: a scalar field when File is nil,
// otherwise file content.
type Part struct {
	Name  string
	Value string
	File  *File
}

type File struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// MultipartBuilder assembles a Multipart in call order.
type MultipartBuilder struct {
	parts []Part
}

func NewMultipart() *MultipartBuilder {
	return &MultipartBuilder{}
}

// File adds a file part with the default application/octet-stream type.
func (b *MultipartBuilder) File(name, filename string, r io.Reader) *MultipartBuilder {
	return b.FileWithType(name, filename, "", r)
}

func (b *MultipartBuilder) FileWithType(name, filename, contentType string, r io.Reader) *MultipartBuilder {
	b.parts = append(b.parts, Part{Name: name, File: &File{Filename: filename, ContentType: contentType, Content: r}})
	return b
}

// Field adds a scalar part unconditionally.
func (b *MultipartBuilder) Field(name, value string) *MultipartBuilder {
	b.parts = append(b.parts, Part{Name: name, Value: value})
	return b
}

// OptionalField adds a scalar part only when value is not blank.
func (b *MultipartBuilder) OptionalField(name, value string) *MultipartBuilder {
	if strings.TrimSpace(value) == "" {
		return b
	}
	return b.Field(name, value)
}

func (b *MultipartBuilder) Build() Multipart {
	return Multipart{Parts: append([]Part(nil), b.parts...)}
}

// encode serialises body and returns the payload and the content type the
// encoding dictates ("" when the configured one should stand).
func encode(body Body) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case JSON:
		b, err := json.Marshal(v.Value)
		if err != nil {
			return nil, "", fmt.Errorf("encode json: %w", err)
		}
		return bytes.NewReader(b), "", nil
	case Multipart:
		return encodeMultipart(v)
	default:
		return nil, "", fmt.Errorf("unsupported body type %T", body)
	}
}

func encodeMultipart(m Multipart) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, p := range m.Parts {
		if p.File == nil {
			if err := mw.WriteField(p.Name, p.Value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", p.Name, err)
			}
			continue
		}

		w, err := createFilePart(mw, p)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", p.Name, err)
		}
		if p.File.Content != nil {
			if _, err := io.Copy(w, p.File.Content); err != nil {
				return nil, "", fmt.Errorf("copy file part %s: %w", p.Name, err)
			}
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

func createFilePart(mw *multipart.Writer, p Part) (io.Writer, error) {
	if p.File.ContentType == "" {
		return mw.CreateFormFile(p.Name, p.File.Filename)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.Name, p.File.Filename))
	h.Set("Content-Type", p.File.ContentType)
	return mw.CreatePart(h)
}
